package common

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vitrine/models"
	"vitrine/services"
)

type WebsiteLookup interface {
	GetWebsiteBySlug(ctx context.Context, slug string) services.Result[models.Website]
}

// SiteResolver looks websites up by slug, collapsing concurrent lookups of
// the same slug into one backend call.
type SiteResolver struct {
	websites WebsiteLookup
	group    singleflight.Group
	log      *zap.Logger
}

func NewSiteResolver(websites WebsiteLookup, log *zap.Logger) *SiteResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &SiteResolver{websites: websites, log: log}
}

func (r *SiteResolver) Resolve(ctx context.Context, slug string) services.Result[models.Website] {
	v, _, shared := r.group.Do(slug, func() (any, error) {
		return r.websites.GetWebsiteBySlug(ctx, slug), nil
	})
	res := v.(services.Result[models.Website])
	if !res.Success && !res.NotFound {
		r.log.Warn("website lookup failed", zap.String("slug", slug), zap.String("error", res.Error), zap.Bool("shared", shared))
	}
	return res
}

// ResolvePublished is Resolve with unpublished websites reported as not found.
func (r *SiteResolver) ResolvePublished(ctx context.Context, slug string) (models.Website, bool) {
	res := r.Resolve(ctx, slug)
	if !res.Success || !res.Data.IsPublished() {
		return models.Website{}, false
	}
	return res.Data, true
}
