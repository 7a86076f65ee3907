package models

import (
	"encoding/json"
	"strings"
	"time"
)

type WebsiteStatus string

const (
	WebsiteDraft     WebsiteStatus = "draft"
	WebsitePublished WebsiteStatus = "published"
	WebsiteArchived  WebsiteStatus = "archived"
)

// TemplateMetadata carries the layout hints a template stamps onto a website
// when it is chosen in the builder.
type TemplateMetadata struct {
	HeroLayout        string `json:"heroLayout,omitempty"`
	ShowProducts      bool   `json:"showProducts"`
	ShowBlogs         bool   `json:"showBlogs"`
	ProductsCount     int    `json:"productsCount,omitempty"`
	BlogsCount        int    `json:"blogsCount,omitempty"`
	HasAboutPreview   bool   `json:"hasAboutPreview,omitempty"`
	HasContactCTA     bool   `json:"hasContactCTA,omitempty"`
	HasContactForm    bool   `json:"hasContactForm,omitempty"`
	HasNewsletter     bool   `json:"hasNewsletter,omitempty"`
	HasTestimonials   bool   `json:"hasTestimonials,omitempty"`
	HeroImagePosition string `json:"heroImagePosition,omitempty"`
	TextPosition      string `json:"textPosition,omitempty"`
	IsMinimal         bool   `json:"isMinimal,omitempty"`
}

type TemplateRef struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Metadata TemplateMetadata `json:"metadata"`
}

type ContentBlock struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Testimonial struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Quote string `json:"quote"`
}

type TemplateContent struct {
	HeroTitle           string         `json:"heroTitle"`
	HeroDescription     string         `json:"heroDescription"`
	HeroImage           string         `json:"heroImage"`
	HeroButtonText      string         `json:"heroButtonText"`
	ProductSectionTitle string         `json:"productSectionTitle"`
	BlogSectionTitle    string         `json:"blogSectionTitle"`
	PortfolioTitle      string         `json:"portfolioTitle"`
	Services            []string       `json:"services"`
	ContentBlocks       []ContentBlock `json:"contentBlocks"`
	Testimonials        []Testimonial  `json:"testimonials"`
}

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type Typography struct {
	HeadingFont string `json:"headingFont"`
	BodyFont    string `json:"bodyFont"`
}

type LayoutSettings struct {
	Style       string `json:"style"`
	HeaderStyle string `json:"headerStyle"`
}

type Customizations struct {
	Colors     Colors         `json:"colors"`
	Typography Typography     `json:"typography"`
	Layout     LayoutSettings `json:"layout"`
}

type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type AboutContent struct {
	CompanyStory string      `json:"companyStory"`
	WhyCreated   string      `json:"whyCreated"`
	Mission      string      `json:"mission"`
	Vision       string      `json:"vision"`
	Features     []string    `json:"features"`
	TeamInfo     string      `json:"teamInfo"`
	ContactInfo  ContactInfo `json:"contactInfo"`
}

type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Website is the owner-configured site. The backend stores it as a flat
// record; MarshalJSON and UnmarshalJSON translate between the two shapes.
type Website struct {
	ID             int
	Slug           string
	Name           string
	Description    string
	Category       string
	Status         WebsiteStatus
	LogoURL        string
	Template       TemplateRef
	Content        TemplateContent
	Customizations Customizations
	Theme          string
	About          AboutContent
	SEO            SEO
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (w Website) IsPublished() bool {
	return w.Status == WebsitePublished
}

// websiteRecord is the backend's shape. Reads accept both the flat fields
// the builder writes and the nested objects some endpoints echo back.
type websiteRecord struct {
	ID          int           `json:"id,omitempty"`
	Slug        string        `json:"slug"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Status      WebsiteStatus `json:"status,omitempty"`
	LogoURL     string        `json:"logoUrl"`

	TemplateID       string            `json:"template_id"`
	TemplateName     string            `json:"template_name"`
	TemplateMetadata *TemplateMetadata `json:"template_metadata,omitempty"`
	Template         *TemplateRef      `json:"template,omitempty"`
	TemplateContent  *TemplateContent  `json:"templateContent,omitempty"`

	HeroTitle           string         `json:"heroTitle"`
	HeroDescription     string         `json:"heroDescription"`
	HeroImage           string         `json:"heroImage"`
	HeroButtonText      string         `json:"heroButtonText"`
	ProductSectionTitle string         `json:"productSectionTitle"`
	BlogSectionTitle    string         `json:"blogSectionTitle"`
	PortfolioTitle      string         `json:"portfolioTitle"`
	Services            []string       `json:"services"`
	ContentBlocks       []ContentBlock `json:"contentBlocks"`
	Testimonials        []Testimonial  `json:"testimonials"`

	Customizations *Customizations `json:"customizations,omitempty"`
	Theme          json.RawMessage `json:"theme,omitempty"`

	AboutContent *AboutContent   `json:"aboutContent,omitempty"`
	CompanyStory string          `json:"companyStory"`
	WhyCreated   string          `json:"whyCreated"`
	Mission      string          `json:"mission"`
	Vision       string          `json:"vision"`
	Features     []string        `json:"features"`
	TeamInfo     json.RawMessage `json:"teamInfo,omitempty"`
	ContactInfo  *ContactInfo    `json:"contactInfo,omitempty"`

	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	SEOKeywords    string `json:"seoKeywords"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (w Website) MarshalJSON() ([]byte, error) {
	teamInfo, err := json.Marshal(w.About.TeamInfo)
	if err != nil {
		return nil, err
	}
	theme, err := json.Marshal(w.Theme)
	if err != nil {
		return nil, err
	}

	meta := w.Template.Metadata
	custom := w.Customizations
	contact := w.About.ContactInfo

	rec := websiteRecord{
		ID:                  w.ID,
		Slug:                w.Slug,
		Name:                w.Name,
		Description:         w.Description,
		Category:            w.Category,
		Status:              w.Status,
		LogoURL:             w.LogoURL,
		TemplateID:          w.Template.ID,
		TemplateName:        w.Template.Name,
		TemplateMetadata:    &meta,
		HeroTitle:           w.Content.HeroTitle,
		HeroDescription:     w.Content.HeroDescription,
		HeroImage:           w.Content.HeroImage,
		HeroButtonText:      w.Content.HeroButtonText,
		ProductSectionTitle: w.Content.ProductSectionTitle,
		BlogSectionTitle:    w.Content.BlogSectionTitle,
		PortfolioTitle:      w.Content.PortfolioTitle,
		Services:            w.Content.Services,
		ContentBlocks:       w.Content.ContentBlocks,
		Testimonials:        w.Content.Testimonials,
		Customizations:      &custom,
		Theme:               theme,
		CompanyStory:        w.About.CompanyStory,
		WhyCreated:          w.About.WhyCreated,
		Mission:             w.About.Mission,
		Vision:              w.About.Vision,
		Features:            w.About.Features,
		TeamInfo:            teamInfo,
		ContactInfo:         &contact,
		SEOTitle:            w.SEO.Title,
		SEODescription:      w.SEO.Description,
		SEOKeywords:         w.SEO.Keywords,
	}
	if !w.CreatedAt.IsZero() {
		rec.CreatedAt = &w.CreatedAt
	}
	if !w.UpdatedAt.IsZero() {
		rec.UpdatedAt = &w.UpdatedAt
	}
	return json.Marshal(rec)
}

func (w *Website) UnmarshalJSON(data []byte) error {
	var rec websiteRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	out := Website{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    rec.Category,
		Status:      rec.Status,
		LogoURL:     rec.LogoURL,
	}

	if rec.Template != nil {
		out.Template = *rec.Template
	}
	out.Template.ID = firstNonEmpty(rec.TemplateID, out.Template.ID)
	out.Template.Name = firstNonEmpty(rec.TemplateName, out.Template.Name)
	if rec.TemplateMetadata != nil {
		out.Template.Metadata = *rec.TemplateMetadata
	}

	if rec.TemplateContent != nil {
		out.Content = *rec.TemplateContent
	}
	c := &out.Content
	c.HeroTitle = firstNonEmpty(rec.HeroTitle, c.HeroTitle)
	c.HeroDescription = firstNonEmpty(rec.HeroDescription, c.HeroDescription)
	c.HeroImage = firstNonEmpty(rec.HeroImage, c.HeroImage)
	c.HeroButtonText = firstNonEmpty(rec.HeroButtonText, c.HeroButtonText)
	c.ProductSectionTitle = firstNonEmpty(rec.ProductSectionTitle, c.ProductSectionTitle)
	c.BlogSectionTitle = firstNonEmpty(rec.BlogSectionTitle, c.BlogSectionTitle)
	c.PortfolioTitle = firstNonEmpty(rec.PortfolioTitle, c.PortfolioTitle)
	if rec.Services != nil {
		c.Services = rec.Services
	}
	if rec.ContentBlocks != nil {
		c.ContentBlocks = rec.ContentBlocks
	}
	if rec.Testimonials != nil {
		c.Testimonials = rec.Testimonials
	}

	if rec.Customizations != nil {
		out.Customizations = *rec.Customizations
	}
	out.Theme = decodeLooseString(rec.Theme)

	if rec.AboutContent != nil {
		out.About = *rec.AboutContent
	}
	a := &out.About
	a.CompanyStory = firstNonEmpty(rec.CompanyStory, a.CompanyStory)
	a.WhyCreated = firstNonEmpty(rec.WhyCreated, a.WhyCreated)
	a.Mission = firstNonEmpty(rec.Mission, a.Mission)
	a.Vision = firstNonEmpty(rec.Vision, a.Vision)
	if rec.Features != nil {
		a.Features = rec.Features
	}
	a.TeamInfo = firstNonEmpty(decodeLooseString(rec.TeamInfo), a.TeamInfo)
	if rec.ContactInfo != nil {
		a.ContactInfo = *rec.ContactInfo
	}

	out.SEO = SEO{Title: rec.SEOTitle, Description: rec.SEODescription, Keywords: rec.SEOKeywords}

	if rec.CreatedAt != nil {
		out.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		out.UpdatedAt = *rec.UpdatedAt
	}

	*w = out
	return nil
}

// decodeLooseString reads a field the backend has been seen to send either
// as a string or as a list of strings. Anything else reads as empty.
func decodeLooseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "\n")
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
