package services

import (
	"context"
	"net/url"
	"strconv"

	"vitrine/models"
)

type ProductService struct {
	api API
}

func NewProductService(api API) *ProductService {
	return &ProductService{api: api}
}

// GetProducts lists products, filtered to one website when websiteID > 0.
func (s *ProductService) GetProducts(ctx context.Context, websiteID int) Result[[]models.Product] {
	return getList[models.Product](ctx, s.api, withQuery("/products/", websiteFilter(websiteID)))
}

func (s *ProductService) GetProductsByWebsiteSlug(ctx context.Context, slug string) Result[[]models.Product] {
	return getList[models.Product](ctx, s.api, withQuery("/products/by_website_slug/", url.Values{"slug": {slug}}))
}

func (s *ProductService) GetProduct(ctx context.Context, id int) Result[models.Product] {
	return getOne[models.Product](ctx, s.api, itemPath("/products/", id))
}

func (s *ProductService) CreateProduct(ctx context.Context, p models.Product) Result[models.Product] {
	return send[models.Product](ctx, s.api, "POST", "/products/", p)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int, p models.Product) Result[models.Product] {
	return send[models.Product](ctx, s.api, "PUT", itemPath("/products/", id), p)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) Result[struct{}] {
	return remove(ctx, s.api, itemPath("/products/", id))
}

type BlogService struct {
	api API
}

func NewBlogService(api API) *BlogService {
	return &BlogService{api: api}
}

func (s *BlogService) GetBlogs(ctx context.Context, websiteID int) Result[[]models.BlogPost] {
	return getList[models.BlogPost](ctx, s.api, withQuery("/blogs/", websiteFilter(websiteID)))
}

func (s *BlogService) GetBlogsByWebsiteSlug(ctx context.Context, slug string) Result[[]models.BlogPost] {
	return getList[models.BlogPost](ctx, s.api, withQuery("/blogs/by_website_slug/", url.Values{"slug": {slug}}))
}

func (s *BlogService) GetBlog(ctx context.Context, id int) Result[models.BlogPost] {
	return getOne[models.BlogPost](ctx, s.api, itemPath("/blogs/", id))
}

func (s *BlogService) CreateBlog(ctx context.Context, b models.BlogPost) Result[models.BlogPost] {
	return send[models.BlogPost](ctx, s.api, "POST", "/blogs/", b)
}

func (s *BlogService) UpdateBlog(ctx context.Context, id int, b models.BlogPost) Result[models.BlogPost] {
	return send[models.BlogPost](ctx, s.api, "PUT", itemPath("/blogs/", id), b)
}

func (s *BlogService) DeleteBlog(ctx context.Context, id int) Result[struct{}] {
	return remove(ctx, s.api, itemPath("/blogs/", id))
}

func websiteFilter(websiteID int) url.Values {
	if websiteID <= 0 {
		return nil
	}
	return url.Values{"website": {strconv.Itoa(websiteID)}}
}
