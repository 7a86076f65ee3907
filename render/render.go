package render

import (
	"fmt"
	"strings"

	"vitrine/models"
	"vitrine/templates"
)

type builder func(s *scope) []Section

// builders is indexed by Layout; a missing entry fails TestEveryLayoutHasBuilder.
var builders = [layoutCount]builder{
	LayoutDefault:            buildDefault,
	LayoutHeroProducts:       buildHeroProducts,
	LayoutTextImageSplit:     buildTextImageSplit,
	LayoutBlogFocused:        buildBlogFocused,
	LayoutProductsBlogsCombo: buildProductsBlogsCombo,
	LayoutImageLeftContent:   buildImageLeftContent,
	LayoutMinimalClean:       buildMinimalClean,
}

// Render builds the homepage for a website. It never fails: an unknown
// template id falls back to the default layout and every blank setting
// falls back to its default.
func Render(website models.Website, products []models.Product, blogs []models.BlogPost, onAddToCart func(models.Product)) *Page {
	layout := ParseLayout(website.Template.ID)

	meta := website.Template.Metadata
	if meta == (models.TemplateMetadata{}) {
		meta = templates.Metadata(website.Template.ID)
	}

	s := &scope{
		layout:   layout,
		website:  website,
		meta:     meta,
		products: products,
		blogs:    blogs,
		onAdd:    onAddToCart,
	}
	return &Page{
		Layout:   layout,
		Website:  website,
		Theme:    ResolveTheme(website.Customizations),
		Sections: builders[layout](s),
	}
}

type scope struct {
	layout   Layout
	website  models.Website
	meta     models.TemplateMetadata
	products []models.Product
	blogs    []models.BlogPost
	onAdd    func(models.Product)
}

func (s *scope) url(path string) string {
	return fmt.Sprintf("/%s%s", s.website.Slug, path)
}

func (s *scope) productLimit() int {
	if s.meta.ProductsCount > 0 {
		return s.meta.ProductsCount
	}
	return defaultCounts[s.layout].products
}

func (s *scope) blogLimit() int {
	if s.meta.BlogsCount > 0 {
		return s.meta.BlogsCount
	}
	return defaultCounts[s.layout].blogs
}

func (s *scope) hero(arrangement, defaultButton, buttonURL string) Section {
	c := s.website.Content
	h := &Hero{
		Arrangement: arrangement,
		Title:       or(c.HeroTitle, s.website.Name),
		Description: or(c.HeroDescription, s.website.Description),
		ButtonText:  or(c.HeroButtonText, defaultButton),
		ButtonURL:   buttonURL,
	}
	if arrangement != HeroMinimal {
		h.Image = heroImage(c.HeroImage)
	} else {
		h.Outline = true
	}
	return Section{Kind: KindHero, Hero: h}
}

// heroImage accepts absolute http(s) and data: URLs only.
func heroImage(candidates ...string) string {
	for _, c := range candidates {
		if strings.HasPrefix(c, "http") || strings.HasPrefix(c, "data:") {
			return c
		}
	}
	return FallbackHeroImage
}

func (s *scope) productSection(title string) Section {
	sec := Section{Kind: KindProducts, Title: title}
	limit := s.productLimit()
	for i, p := range s.products {
		if i >= limit {
			break
		}
		sec.Products = append(sec.Products, newProductCard(s.website.Slug, p, s.onAdd))
	}
	if len(sec.Products) == 0 {
		sec.Empty = &EmptyState{
			Title:      "Products Coming Soon!",
			Message:    "We're working hard to bring you amazing products. Check back soon!",
			ActionText: "Get Notified When Available",
			ActionURL:  s.url("/contact"),
		}
	}
	return sec
}

func (s *scope) blogSection(title string) Section {
	sec := Section{Kind: KindBlogs, Title: title}
	limit := s.blogLimit()
	for i, b := range s.blogs {
		if i >= limit {
			break
		}
		sec.Blogs = append(sec.Blogs, newBlogCard(s.website.Slug, b))
	}
	if len(sec.Blogs) == 0 {
		sec.Empty = &EmptyState{
			Title:      "Stories Coming Soon!",
			Message:    "We're writing our first posts. Check back soon!",
			ActionText: "Contact Us",
			ActionURL:  s.url("/contact"),
		}
	}
	return sec
}

// about appends the about preview when enabled and there is a story to tell.
func (s *scope) about(sections []Section) []Section {
	story := s.website.About.CompanyStory
	if !s.meta.HasAboutPreview || story == "" {
		return sections
	}
	return append(sections, Section{
		Kind:  KindAboutPreview,
		Title: "About " + s.website.Name,
		About: &AboutPreview{Excerpt: truncate(story, 200) + "...", URL: s.url("/about")},
	})
}

func (s *scope) contactCTA() Section {
	return Section{
		Kind:  KindContactCTA,
		Title: "Get in Touch",
		Contact: &Contact{
			Title: "Get in Touch",
			Text:  "Contact Us",
			URL:   s.url("/contact"),
			Info:  s.website.About.ContactInfo,
		},
	}
}

func (s *scope) contactForm() Section {
	return Section{
		Kind:    KindContactForm,
		Title:   "Contact Us",
		Contact: &Contact{Title: "Contact Us", Text: "Send Message", URL: s.url("/contact"), Info: s.website.About.ContactInfo},
	}
}

func buildDefault(s *scope) []Section {
	hero := Section{Kind: KindHero, Hero: &Hero{
		Arrangement: HeroPlain,
		Title:       s.website.Name,
		Description: s.website.Description,
	}}
	return []Section{hero, s.productSection("Our Products")}
}

func buildHeroProducts(s *scope) []Section {
	c := s.website.Content
	out := []Section{
		s.hero(HeroCenter, "Shop Now", "#products"),
		s.productSection(or(c.ProductSectionTitle, "Featured Products")),
	}
	out = s.about(out)
	if s.meta.HasContactCTA {
		out = append(out, s.contactCTA())
	}
	return out
}

func buildTextImageSplit(s *scope) []Section {
	c := s.website.Content
	out := []Section{s.hero(HeroSplit, "Get Started", s.url("/contact"))}
	if len(c.Services) > 0 {
		out = append(out, Section{Kind: KindServices, Title: "Our Services", Services: c.Services})
	}
	out = append(out, s.productSection(or(c.ProductSectionTitle, "Our Products")))
	out = s.about(out)
	if s.meta.HasContactForm {
		out = append(out, s.contactForm())
	}
	return out
}

func buildBlogFocused(s *scope) []Section {
	c := s.website.Content
	out := []Section{
		s.hero(HeroCenter, "Read More", "#blogs"),
		s.blogSection(or(c.BlogSectionTitle, "Latest Posts")),
		s.productSection(or(c.ProductSectionTitle, "Our Products")),
	}
	out = s.about(out)
	if s.meta.HasNewsletter {
		out = append(out, Section{Kind: KindNewsletter, Title: "Stay in the loop"})
	}
	return out
}

func buildProductsBlogsCombo(s *scope) []Section {
	c := s.website.Content
	out := []Section{
		s.hero(HeroCenter, "Shop Now", "#products"),
		s.productSection(or(c.ProductSectionTitle, "Featured Products")),
		s.blogSection(or(c.BlogSectionTitle, "Latest Updates")),
	}
	return s.about(out)
}

func buildImageLeftContent(s *scope) []Section {
	c := s.website.Content
	grid := s.productSection(or(c.PortfolioTitle, "Our Work"))
	grid.Portfolio = true

	out := []Section{s.hero(HeroSplitReverse, "Learn More", s.url("/about")), grid}
	if s.meta.HasTestimonials && len(c.Testimonials) > 0 {
		out = append(out, Section{Kind: KindTestimonials, Title: "What Clients Say", Testimonials: c.Testimonials})
	}
	if s.meta.HasContactCTA {
		out = append(out, s.contactCTA())
	}
	return out
}

func buildMinimalClean(s *scope) []Section {
	c := s.website.Content
	out := []Section{s.hero(HeroMinimal, "Explore", "#products")}
	if len(c.ContentBlocks) > 0 {
		out = append(out, Section{Kind: KindContentBlocks, Blocks: c.ContentBlocks})
	}
	out = append(out, s.productSection(or(c.ProductSectionTitle, "Our Products")))
	if s.meta.ShowBlogs {
		out = append(out, s.blogSection(or(c.BlogSectionTitle, "Latest Posts")))
	}
	if s.meta.HasContactForm {
		out = append(out, s.contactForm())
	}
	return out
}
