package render

import "vitrine/models"

type SectionKind string

const (
	KindHero          SectionKind = "hero"
	KindProducts      SectionKind = "products"
	KindBlogs         SectionKind = "blogs"
	KindServices      SectionKind = "services"
	KindContentBlocks SectionKind = "content-blocks"
	KindTestimonials  SectionKind = "testimonials"
	KindAboutPreview  SectionKind = "about-preview"
	KindContactCTA    SectionKind = "contact-cta"
	KindContactForm   SectionKind = "contact-form"
	KindNewsletter    SectionKind = "newsletter"
)

// Hero arrangements.
const (
	HeroCenter       = "center"
	HeroSplit        = "split"
	HeroSplitReverse = "split-reverse"
	HeroMinimal      = "minimal"
	HeroPlain        = "plain"
)

const FallbackHeroImage = "https://images.unsplash.com/photo-1557804506-669a67965ba0?ixlib=rb-4.0.3&auto=format&fit=crop&w=1200&q=80"

type Hero struct {
	Arrangement string
	Title       string
	Description string
	Image       string
	ButtonText  string
	ButtonURL   string
	Outline     bool
}

// EmptyState replaces a collection region that has nothing to show.
type EmptyState struct {
	Title      string
	Message    string
	ActionText string
	ActionURL  string
}

type AboutPreview struct {
	Excerpt string
	URL     string
}

type Contact struct {
	Title string
	Text  string
	URL   string
	Info  models.ContactInfo
}

// Section is one block of the rendered homepage. Only the fields that
// belong to Kind are set.
type Section struct {
	Kind  SectionKind
	Title string

	Hero         *Hero
	Products     []ProductCard
	Blogs        []BlogCard
	Empty        *EmptyState
	Services     []string
	Blocks       []models.ContentBlock
	Testimonials []models.Testimonial
	About        *AboutPreview
	Contact      *Contact

	// Portfolio renders the product grid as image tiles.
	Portfolio bool
}

type Page struct {
	Layout  Layout
	Website models.Website
	Theme   models.Customizations

	Sections []Section
}

// Section returns the first section of the given kind.
func (p *Page) Section(kind SectionKind) (Section, bool) {
	for _, s := range p.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

func (p *Page) Has(kind SectionKind) bool {
	_, ok := p.Section(kind)
	return ok
}
