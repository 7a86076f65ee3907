package builder

import (
	"context"
	"strings"

	"vitrine/models"
	"vitrine/services"
)

type SlugStatus int

const (
	SlugUnknown SlugStatus = iota
	SlugAvailable
	SlugTaken
)

func (s SlugStatus) String() string {
	switch s {
	case SlugAvailable:
		return "available"
	case SlugTaken:
		return "taken"
	}
	return "unknown"
}

const minSlugLength = 3

var reservedSlugs = map[string]struct{}{
	"admin": {}, "api": {}, "www": {}, "mail": {}, "ftp": {}, "test": {},
	"explore": {}, "static": {},
}

func IsReserved(slug string) bool {
	_, ok := reservedSlugs[strings.ToLower(slug)]
	return ok
}

type SlugLookup interface {
	GetWebsiteBySlug(ctx context.Context, slug string) services.Result[models.Website]
}

// CheckSlug reports whether slug is free for the website ownID (0 for a new
// one). Short slugs and lookup failures other than not-found stay unknown.
func CheckSlug(ctx context.Context, lookup SlugLookup, slug string, ownID int) SlugStatus {
	if len(slug) < minSlugLength {
		return SlugUnknown
	}
	if IsReserved(slug) {
		return SlugTaken
	}
	if lookup == nil {
		return SlugUnknown
	}

	res := lookup.GetWebsiteBySlug(ctx, slug)
	switch {
	case res.Success && res.Data.ID != 0 && res.Data.ID == ownID:
		return SlugAvailable
	case res.Success:
		return SlugTaken
	case res.NotFound:
		return SlugAvailable
	}
	return SlugUnknown
}
