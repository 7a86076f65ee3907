package templates

import "vitrine/models"

const (
	HeroProducts       = "hero-products"
	TextImageSplit     = "text-image-split"
	BlogFocused        = "blog-focused"
	ProductsBlogsCombo = "products-blogs-combo"
	ImageLeftContent   = "image-left-content"
	MinimalClean       = "minimal-clean"
)

// Descriptor describes one homepage template offered in the builder.
type Descriptor struct {
	ID             string                  `json:"id"`
	Name           string                  `json:"name"`
	Description    string                  `json:"description"`
	Category       string                  `json:"category"`
	Preview        string                  `json:"preview"`
	Sections       []string                `json:"sections"`
	Metadata       models.TemplateMetadata `json:"metadata"`
	RequiredFields []string                `json:"requiredFields"`
}

// Ref is the reference a website stores once the template is chosen.
func (d Descriptor) Ref() models.TemplateRef {
	return models.TemplateRef{ID: d.ID, Name: d.Name, Metadata: d.Metadata}
}

func (d Descriptor) clone() Descriptor {
	d.Sections = append([]string(nil), d.Sections...)
	d.RequiredFields = append([]string(nil), d.RequiredFields...)
	return d
}

var registry = []Descriptor{
	{
		ID:          HeroProducts,
		Name:        "Hero with Products",
		Description: "Large hero section with featured products below",
		Category:    "ecommerce",
		Preview:     "https://via.placeholder.com/400x300/3b82f6/ffffff?text=Hero+Products",
		Sections:    []string{"hero", "featured-products", "about-preview", "contact-cta"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "center",
			ShowProducts:      true,
			ProductsCount:     6,
			HasAboutPreview:   true,
			HasContactCTA:     true,
			HeroImagePosition: "background",
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "heroImage", "heroButtonText"},
	},
	{
		ID:          TextImageSplit,
		Name:        "Text & Image Split",
		Description: "Text content on left, hero image on right",
		Category:    "business",
		Preview:     "https://via.placeholder.com/400x300/059669/ffffff?text=Text+Image",
		Sections:    []string{"split-hero", "services", "about-preview", "contact-form"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "split",
			HasAboutPreview:   true,
			HasContactForm:    true,
			HeroImagePosition: "right",
			TextPosition:      "left",
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "heroImage", "services"},
	},
	{
		ID:          BlogFocused,
		Name:        "Blog Focused",
		Description: "Hero section with latest blog posts prominently displayed",
		Category:    "blog",
		Preview:     "https://via.placeholder.com/400x300/7c3aed/ffffff?text=Blog+Focus",
		Sections:    []string{"hero", "latest-blogs", "about-preview", "newsletter"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "center",
			ShowBlogs:         true,
			BlogsCount:        6,
			HasAboutPreview:   true,
			HasNewsletter:     true,
			HeroImagePosition: "background",
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "heroImage", "blogSectionTitle"},
	},
	{
		ID:          ProductsBlogsCombo,
		Name:        "Products & Blogs Combo",
		Description: "Balanced layout with both products and blog posts",
		Category:    "hybrid",
		Preview:     "https://via.placeholder.com/400x300/dc2626/ffffff?text=Combo+Layout",
		Sections:    []string{"hero", "featured-products", "latest-blogs", "about-preview"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "center",
			ShowProducts:      true,
			ShowBlogs:         true,
			ProductsCount:     4,
			BlogsCount:        3,
			HasAboutPreview:   true,
			HeroImagePosition: "background",
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "heroImage", "productSectionTitle", "blogSectionTitle"},
	},
	{
		ID:          ImageLeftContent,
		Name:        "Image Left Content",
		Description: "Large image on left, content and links on right",
		Category:    "portfolio",
		Preview:     "https://via.placeholder.com/400x300/f59e0b/ffffff?text=Image+Left",
		Sections:    []string{"split-hero-reverse", "portfolio-grid", "testimonials", "contact-cta"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "split",
			ShowProducts:      true,
			ProductsCount:     8,
			HasTestimonials:   true,
			HasContactCTA:     true,
			HeroImagePosition: "left",
			TextPosition:      "right",
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "heroImage", "portfolioTitle"},
	},
	{
		ID:          MinimalClean,
		Name:        "Minimal Clean",
		Description: "Clean minimal design with focus on content",
		Category:    "minimal",
		Preview:     "https://via.placeholder.com/400x300/6b7280/ffffff?text=Minimal",
		Sections:    []string{"minimal-hero", "content-blocks", "simple-contact"},
		Metadata: models.TemplateMetadata{
			HeroLayout:        "minimal",
			ShowBlogs:         true,
			BlogsCount:        3,
			HasContactForm:    true,
			HeroImagePosition: "none",
			IsMinimal:         true,
		},
		RequiredFields: []string{"heroTitle", "heroDescription", "contentBlocks"},
	},
}

// All returns every descriptor in presentation order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	for i, d := range registry {
		out[i] = d.clone()
	}
	return out
}

func GetTemplateByID(id string) (Descriptor, bool) {
	for _, d := range registry {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Descriptor{}, false
}

func GetTemplatesByCategory(category string) []Descriptor {
	var out []Descriptor
	for _, d := range registry {
		if d.Category == category {
			out = append(out, d.clone())
		}
	}
	return out
}

// RequiredFields is nil for unknown templates.
func RequiredFields(id string) []string {
	d, ok := GetTemplateByID(id)
	if !ok {
		return nil
	}
	return d.RequiredFields
}

// Metadata is the zero value for unknown templates.
func Metadata(id string) models.TemplateMetadata {
	d, _ := GetTemplateByID(id)
	return d.Metadata
}

func baseContent() models.TemplateContent {
	return models.TemplateContent{
		HeroButtonText:      "Get Started",
		ProductSectionTitle: "Our Products",
		BlogSectionTitle:    "Latest Posts",
		PortfolioTitle:      "Our Work",
		Services:            []string{},
		ContentBlocks:       []models.ContentBlock{},
		Testimonials:        []models.Testimonial{},
	}
}

// GetDefaultTemplateContent seeds the builder's content step. Unknown ids
// get an empty content value.
func GetDefaultTemplateContent(id string) models.TemplateContent {
	if _, ok := GetTemplateByID(id); !ok {
		return models.TemplateContent{}
	}

	c := baseContent()
	switch id {
	case HeroProducts:
		c.HeroTitle = "Welcome to Our Store"
		c.HeroDescription = "Discover amazing products and exceptional service"
		c.ProductSectionTitle = "Featured Products"
	case TextImageSplit:
		c.HeroTitle = "Professional Business Solutions"
		c.HeroDescription = "We provide comprehensive business solutions tailored to your needs"
		c.Services = []string{"Consulting", "Development", "Support"}
	case BlogFocused:
		c.HeroTitle = "Stories & Insights"
		c.HeroDescription = "Stay updated with our latest thoughts and industry insights"
		c.BlogSectionTitle = "Recent Articles"
	case ProductsBlogsCombo:
		c.HeroTitle = "Your Complete Solution"
		c.HeroDescription = "Products you need, insights you want"
		c.ProductSectionTitle = "Popular Products"
		c.BlogSectionTitle = "Latest Updates"
	case ImageLeftContent:
		c.HeroTitle = "Creative Excellence"
		c.HeroDescription = "Showcasing our best work and creative solutions"
		c.PortfolioTitle = "Featured Work"
	case MinimalClean:
		c.HeroTitle = "Simple. Effective. Beautiful."
		c.HeroDescription = "Clean design meets powerful functionality"
		c.ContentBlocks = []models.ContentBlock{
			{Title: "Quality", Description: "We deliver exceptional quality in everything we do"},
			{Title: "Innovation", Description: "Constantly pushing boundaries and exploring new ideas"},
			{Title: "Support", Description: "Dedicated support team ready to help you succeed"},
		}
	}
	return c
}

// MissingFields lists the template's required fields left blank in content.
func MissingFields(id string, content models.TemplateContent) []string {
	var missing []string
	for _, field := range RequiredFields(id) {
		if !fieldPresent(field, content) {
			missing = append(missing, field)
		}
	}
	return missing
}

func fieldPresent(field string, c models.TemplateContent) bool {
	switch field {
	case "heroTitle":
		return c.HeroTitle != ""
	case "heroDescription":
		return c.HeroDescription != ""
	case "heroImage":
		return c.HeroImage != ""
	case "heroButtonText":
		return c.HeroButtonText != ""
	case "productSectionTitle":
		return c.ProductSectionTitle != ""
	case "blogSectionTitle":
		return c.BlogSectionTitle != ""
	case "portfolioTitle":
		return c.PortfolioTitle != ""
	case "services":
		return len(c.Services) > 0
	case "contentBlocks":
		return len(c.ContentBlocks) > 0
	}
	return true
}
