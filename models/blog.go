package models

import (
	"strings"
	"time"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
	BlogScheduled BlogStatus = "scheduled"
)

const (
	BlogLayoutCard    = "card"
	BlogLayoutOverlay = "hover-overlay"

	PlacementColumn        = "column"
	PlacementRowImageLeft  = "row-image-left"
	PlacementRowImageRight = "row-image-right"
)

type BlogCustomizations struct {
	ShowAuthor bool   `json:"showAuthor"`
	ShowDate   bool   `json:"showDate"`
	ShowTags   bool   `json:"showTags"`
	Layout     string `json:"layout" validate:"omitempty,oneof=column row-image-left row-image-right"`
}

func DefaultBlogCustomizations() BlogCustomizations {
	return BlogCustomizations{ShowAuthor: true, ShowDate: true, ShowTags: true, Layout: PlacementColumn}
}

type BlogPost struct {
	ID             int                `json:"id,omitempty"`
	Slug           string             `json:"slug"`
	Title          string             `json:"title" validate:"required,max=200"`
	Content        string             `json:"content"`
	Excerpt        string             `json:"excerpt"`
	FeaturedImage  string             `json:"featuredImage"`
	Tags           []string           `json:"tags"`
	Author         string             `json:"author"`
	Status         BlogStatus         `json:"status" validate:"omitempty,oneof=draft published scheduled"`
	Layout         string             `json:"layout"`
	Customizations BlogCustomizations `json:"customizations"`
	WebsiteID      int                `json:"website"`
	CreatedAt      time.Time          `json:"created_at,omitempty"`
	PublishedAt    *time.Time         `json:"published_at,omitempty"`
}

func (b BlogPost) Visible() bool {
	return b.Status == "" || b.Status == BlogPublished
}

func (b BlogPost) IsOverlay() bool {
	return b.Layout == BlogLayoutOverlay
}

// Date is the publication time, or the creation time for unpublished posts.
func (b BlogPost) Date() time.Time {
	if b.PublishedAt != nil {
		return *b.PublishedAt
	}
	return b.CreatedAt
}

func (b BlogPost) FirstTag() string {
	if len(b.Tags) == 0 {
		return ""
	}
	return b.Tags[0]
}

func (b BlogPost) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ParseTags splits a comma separated tag list, trimming blanks and dropping
// case-insensitive duplicates while keeping first-seen order.
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
