package services

import (
	"context"
	"net/url"

	"vitrine/models"
)

type WebsiteService struct {
	api API
}

func NewWebsiteService(api API) *WebsiteService {
	return &WebsiteService{api: api}
}

func (s *WebsiteService) GetWebsites(ctx context.Context) Result[[]models.Website] {
	return getList[models.Website](ctx, s.api, "/websites/")
}

func (s *WebsiteService) GetWebsite(ctx context.Context, id int) Result[models.Website] {
	return getOne[models.Website](ctx, s.api, itemPath("/websites/", id))
}

func (s *WebsiteService) GetWebsiteBySlug(ctx context.Context, slug string) Result[models.Website] {
	return getOne[models.Website](ctx, s.api, withQuery("/websites/by_slug/", url.Values{"slug": {slug}}))
}

func (s *WebsiteService) CreateWebsite(ctx context.Context, w models.Website) Result[models.Website] {
	return send[models.Website](ctx, s.api, "POST", "/websites/", w)
}

func (s *WebsiteService) UpdateWebsite(ctx context.Context, id int, w models.Website) Result[models.Website] {
	return send[models.Website](ctx, s.api, "PUT", itemPath("/websites/", id), w)
}

func (s *WebsiteService) DeleteWebsite(ctx context.Context, id int) Result[struct{}] {
	return remove(ctx, s.api, itemPath("/websites/", id))
}
