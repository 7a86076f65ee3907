package render

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/models"
	"vitrine/templates"
)

func site(templateID string) models.Website {
	w := models.Website{
		ID:          1,
		Slug:        "acme",
		Name:        "Acme",
		Description: "Everything Acme",
		Status:      models.WebsitePublished,
	}
	if d, ok := templates.GetTemplateByID(templateID); ok {
		w.Template = d.Ref()
		w.Content = templates.GetDefaultTemplateContent(templateID)
	} else {
		w.Template.ID = templateID
	}
	return w
}

func productsN(n int) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{ID: i + 1, Name: "Widget", Price: decimal.NewFromInt(10), Inventory: 5}
	}
	return out
}

func blogsN(n int) []models.BlogPost {
	out := make([]models.BlogPost, n)
	for i := range out {
		out[i] = models.BlogPost{ID: i + 1, Slug: "post", Title: "Post"}
	}
	return out
}

func TestEveryLayoutHasBuilder(t *testing.T) {
	for _, l := range Layouts() {
		assert.NotNil(t, builders[l], l.String())
	}
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutHeroProducts, ParseLayout("hero-products"))
	assert.Equal(t, LayoutMinimalClean, ParseLayout("minimal-clean"))
	assert.Equal(t, LayoutDefault, ParseLayout(""))
	assert.Equal(t, LayoutDefault, ParseLayout("default"))
	assert.Equal(t, LayoutDefault, ParseLayout("fancy-unknown"))
	assert.Equal(t, "default", Layout(99).String())
}

func TestRender_DefaultCounts(t *testing.T) {
	tests := []struct {
		id       string
		products int
		blogs    int
	}{
		{templates.HeroProducts, 6, 0},
		{templates.TextImageSplit, 6, 0},
		{templates.BlogFocused, 3, 6},
		{templates.ProductsBlogsCombo, 4, 3},
		{templates.ImageLeftContent, 8, 0},
		{templates.MinimalClean, 6, 3},
		{"", 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			page := Render(site(tt.id), productsN(20), blogsN(20), nil)

			sec, ok := page.Section(KindProducts)
			require.True(t, ok)
			assert.Len(t, sec.Products, tt.products)

			blogs, ok := page.Section(KindBlogs)
			if tt.blogs == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Len(t, blogs.Blogs, tt.blogs)
		})
	}
}

func TestRender_ZeroCountsUseLayoutDefaults(t *testing.T) {
	tests := []struct {
		id       string
		products int
		blogs    int
	}{
		{templates.HeroProducts, 6, 0},
		{templates.TextImageSplit, 6, 0},
		{templates.BlogFocused, 3, 6},
		{templates.ProductsBlogsCombo, 4, 3},
		{templates.ImageLeftContent, 8, 0},
		{templates.MinimalClean, 6, 3},
		{"", 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			w := site(tt.id)
			w.Template.Metadata = models.TemplateMetadata{HeroLayout: "center", ShowBlogs: true}
			page := Render(w, productsN(20), blogsN(20), nil)

			sec, ok := page.Section(KindProducts)
			require.True(t, ok)
			assert.Len(t, sec.Products, tt.products)

			blogs, ok := page.Section(KindBlogs)
			if tt.blogs == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Len(t, blogs.Blogs, tt.blogs)
		})
	}
}

func TestRender_MetadataCountOverrides(t *testing.T) {
	w := site(templates.HeroProducts)
	w.Template.Metadata.ProductsCount = 2

	sec, _ := Render(w, productsN(10), nil, nil).Section(KindProducts)
	assert.Len(t, sec.Products, 2)
}

func TestRender_EmptyProducts(t *testing.T) {
	for _, l := range Layouts() {
		t.Run(l.String(), func(t *testing.T) {
			page := Render(site(l.String()), nil, nil, nil)

			sec, ok := page.Section(KindProducts)
			require.True(t, ok)
			require.NotNil(t, sec.Empty)
			assert.Equal(t, "Products Coming Soon!", sec.Empty.Title)
			assert.Equal(t, "Get Notified When Available", sec.Empty.ActionText)
			assert.Equal(t, "/acme/contact", sec.Empty.ActionURL)

			if blogs, ok := page.Section(KindBlogs); ok {
				assert.NotNil(t, blogs.Empty)
			}
		})
	}
}

func TestRender_HeroFallbacks(t *testing.T) {
	w := site(templates.HeroProducts)
	w.Content = models.TemplateContent{HeroImage: "/relative.png"}

	page := Render(w, nil, nil, nil)
	hero, _ := page.Section(KindHero)
	assert.Equal(t, "Acme", hero.Hero.Title)
	assert.Equal(t, "Everything Acme", hero.Hero.Description)
	assert.Equal(t, "Shop Now", hero.Hero.ButtonText)
	assert.Equal(t, FallbackHeroImage, hero.Hero.Image)

	w.Content.HeroImage = "data:image/png;base64,AAAA"
	hero, _ = Render(w, nil, nil, nil).Section(KindHero)
	assert.Equal(t, "data:image/png;base64,AAAA", hero.Hero.Image)
}

func TestRender_ButtonDefaults(t *testing.T) {
	want := map[string]string{
		templates.HeroProducts:       "Shop Now",
		templates.ProductsBlogsCombo: "Shop Now",
		templates.TextImageSplit:     "Get Started",
		templates.BlogFocused:        "Read More",
		templates.ImageLeftContent:   "Learn More",
		templates.MinimalClean:       "Explore",
	}
	for id, text := range want {
		w := site(id)
		w.Content.HeroButtonText = ""
		hero, _ := Render(w, nil, nil, nil).Section(KindHero)
		assert.Equal(t, text, hero.Hero.ButtonText, id)
	}

	hero, _ := Render(site(templates.MinimalClean), nil, nil, nil).Section(KindHero)
	assert.True(t, hero.Hero.Outline)
	assert.Empty(t, hero.Hero.Image)
}

func TestRender_DefaultLayoutHero(t *testing.T) {
	page := Render(site("nope"), nil, nil, nil)
	require.Equal(t, LayoutDefault, page.Layout)

	hero, _ := page.Section(KindHero)
	assert.Equal(t, "Acme", hero.Hero.Title)
	assert.Empty(t, hero.Hero.ButtonText)
}

func TestRender_AboutPreview(t *testing.T) {
	w := site(templates.HeroProducts)
	w.About.CompanyStory = strings.Repeat("a", 250)

	sec, ok := Render(w, nil, nil, nil).Section(KindAboutPreview)
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("a", 200)+"...", sec.About.Excerpt)
	assert.Equal(t, "/acme/about", sec.About.URL)

	w.About.CompanyStory = ""
	assert.False(t, Render(w, nil, nil, nil).Has(KindAboutPreview))
}

func TestRender_MetadataFromRegistryWhenUnset(t *testing.T) {
	w := site(templates.ImageLeftContent)
	w.Template.Metadata = models.TemplateMetadata{}
	w.Content.Testimonials = []models.Testimonial{{Name: "Jo", Quote: "Great"}}

	page := Render(w, productsN(10), nil, nil)
	sec, _ := page.Section(KindProducts)
	assert.Len(t, sec.Products, 8)
	assert.True(t, sec.Portfolio)
	assert.True(t, page.Has(KindTestimonials))
	assert.True(t, page.Has(KindContactCTA))
}

func TestRender_Theme(t *testing.T) {
	w := site(templates.HeroProducts)
	w.Customizations.Colors.Primary = "#ff0000"

	page := Render(w, nil, nil, nil)
	assert.Equal(t, "#ff0000", page.Theme.Colors.Primary)
	assert.Equal(t, DefaultSecondary, page.Theme.Colors.Secondary)
	assert.Equal(t, DefaultFont, page.Theme.Typography.HeadingFont)
	assert.Equal(t, DefaultHeaderStyle, page.Theme.Layout.HeaderStyle)
}

func TestResolveTheme_RejectsMalformedValues(t *testing.T) {
	got := ResolveTheme(models.Customizations{
		Colors: models.Colors{
			Primary:    "red}</style><script>alert(1)</script>",
			Secondary:  "rgba(0, 0, 0, 0.5)",
			Accent:     "rgb(300, 0, 0)",
			Background: "navy",
			Text:       "#abc",
		},
		Typography: models.Typography{HeadingFont: "Open Sans", BodyFont: "x;}body{display:none"},
		Layout:     models.LayoutSettings{Style: "modern", HeaderStyle: "<b>"},
	})

	assert.Equal(t, DefaultPrimary, got.Colors.Primary)
	assert.Equal(t, "#00000080", got.Colors.Secondary)
	assert.Equal(t, DefaultAccent, got.Colors.Accent)
	assert.Equal(t, "navy", got.Colors.Background)
	assert.Equal(t, "#abc", got.Colors.Text)
	assert.Equal(t, "Open Sans", got.Typography.HeadingFont)
	assert.Equal(t, DefaultFont, got.Typography.BodyFont)
	assert.Equal(t, "modern", got.Layout.Style)
	assert.Equal(t, DefaultHeaderStyle, got.Layout.HeaderStyle)
}

func TestProductCard(t *testing.T) {
	orig := decimal.NewFromInt(20)
	p := models.Product{
		ID:            7,
		Name:          "Lamp",
		Description:   strings.Repeat("d", 150),
		Price:         decimal.NewFromInt(15),
		OriginalPrice: &orig,
		Inventory:     1,
	}

	var added []models.Product
	card := newProductCard("acme", p, func(p models.Product) { added = append(added, p) })

	assert.Equal(t, "/acme/products/7", card.URL)
	assert.Equal(t, ProductPlaceholder, card.Image)
	assert.Equal(t, strings.Repeat("d", 100)+"...", card.Description)
	require.NotNil(t, card.OriginalPrice)
	assert.True(t, card.AddToCart())
	require.Len(t, added, 1)
	assert.Equal(t, 7, added[0].ID)

	p.Inventory = 0
	p.ShortDescription = "short"
	card = newProductCard("acme", p, func(models.Product) { t.Fatal("out of stock card fired") })
	assert.Equal(t, "short", card.Description)
	assert.False(t, card.AddToCart())
}

func TestBlogCard(t *testing.T) {
	b := models.BlogPost{Slug: "hello", Title: "Hello", Tags: []string{"news", "go"}, Layout: models.BlogLayoutOverlay}
	card := newBlogCard("acme", b)

	assert.Equal(t, "/acme/blogs/hello", card.URL)
	assert.True(t, card.Overlay)
	assert.Equal(t, "news", card.FirstTag)
	assert.Equal(t, models.PlacementColumn, card.Placement)
	assert.True(t, card.ShowDate)

	b.Layout = models.BlogLayoutCard
	b.Customizations = models.BlogCustomizations{Layout: models.PlacementRowImageLeft}
	card = newBlogCard("acme", b)
	assert.False(t, card.Overlay)
	assert.Equal(t, models.PlacementRowImageLeft, card.Placement)
	assert.False(t, card.ShowAuthor)
}

var propertyIDs = []string{
	"", "default", "unknown", "HERO-PRODUCTS",
	templates.HeroProducts, templates.TextImageSplit, templates.BlogFocused,
	templates.ProductsBlogsCombo, templates.ImageLeftContent, templates.MinimalClean,
}

func TestProperty_RenderIsTotal(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("any template id renders a page with a hero and a products region", prop.ForAll(
		func(idx, nProducts, nBlogs int) bool {
			page := Render(site(propertyIDs[idx]), productsN(nProducts), blogsN(nBlogs), nil)
			if page == nil || len(page.Sections) == 0 || page.Sections[0].Kind != KindHero {
				return false
			}
			sec, ok := page.Section(KindProducts)
			if !ok {
				return false
			}
			return (len(sec.Products) == 0) == (sec.Empty != nil)
		},
		gen.IntRange(0, len(propertyIDs)-1),
		gen.IntRange(0, 12),
		gen.IntRange(0, 12),
	))

	properties.Property("unknown ids always use the default layout", prop.ForAll(
		func(id string) bool {
			return Render(site("x-"+id), nil, nil, nil).Layout == LayoutDefault
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
