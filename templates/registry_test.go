package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/models"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	ids := make([]string, len(all))
	for i, d := range all {
		ids[i] = d.ID
	}
	assert.Equal(t, []string{HeroProducts, TextImageSplit, BlogFocused, ProductsBlogsCombo, ImageLeftContent, MinimalClean}, ids)
}

func TestGetTemplateByID(t *testing.T) {
	d, ok := GetTemplateByID(ImageLeftContent)
	require.True(t, ok)
	assert.Equal(t, "portfolio", d.Category)
	assert.Equal(t, 8, d.Metadata.ProductsCount)
	assert.True(t, d.Metadata.HasTestimonials)
	assert.Equal(t, "Image Left Content", d.Ref().Name)

	_, ok = GetTemplateByID("nope")
	assert.False(t, ok)
}

func TestGetTemplateByID_ReturnsCopies(t *testing.T) {
	d, _ := GetTemplateByID(HeroProducts)
	d.Sections[0] = "mutated"
	d.RequiredFields = append(d.RequiredFields, "extra")

	again, _ := GetTemplateByID(HeroProducts)
	assert.Equal(t, "hero", again.Sections[0])
	assert.Len(t, again.RequiredFields, 4)
}

func TestGetTemplatesByCategory(t *testing.T) {
	blog := GetTemplatesByCategory("blog")
	require.Len(t, blog, 1)
	assert.Equal(t, BlogFocused, blog[0].ID)

	assert.Empty(t, GetTemplatesByCategory("unknown"))
}

func TestRequiredFieldsAndMetadata(t *testing.T) {
	assert.Equal(t, []string{"heroTitle", "heroDescription", "contentBlocks"}, RequiredFields(MinimalClean))
	assert.Nil(t, RequiredFields("nope"))

	assert.True(t, Metadata(MinimalClean).IsMinimal)
	assert.Equal(t, models.TemplateMetadata{}, Metadata("nope"))
}

func TestGetDefaultTemplateContent(t *testing.T) {
	tests := []struct {
		id        string
		heroTitle string
		check     func(t *testing.T, c models.TemplateContent)
	}{
		{HeroProducts, "Welcome to Our Store", func(t *testing.T, c models.TemplateContent) {
			assert.Equal(t, "Featured Products", c.ProductSectionTitle)
			assert.Equal(t, "Latest Posts", c.BlogSectionTitle)
		}},
		{TextImageSplit, "Professional Business Solutions", func(t *testing.T, c models.TemplateContent) {
			assert.Equal(t, []string{"Consulting", "Development", "Support"}, c.Services)
		}},
		{BlogFocused, "Stories & Insights", func(t *testing.T, c models.TemplateContent) {
			assert.Equal(t, "Recent Articles", c.BlogSectionTitle)
		}},
		{ProductsBlogsCombo, "Your Complete Solution", func(t *testing.T, c models.TemplateContent) {
			assert.Equal(t, "Popular Products", c.ProductSectionTitle)
			assert.Equal(t, "Latest Updates", c.BlogSectionTitle)
		}},
		{ImageLeftContent, "Creative Excellence", func(t *testing.T, c models.TemplateContent) {
			assert.Equal(t, "Featured Work", c.PortfolioTitle)
		}},
		{MinimalClean, "Simple. Effective. Beautiful.", func(t *testing.T, c models.TemplateContent) {
			require.Len(t, c.ContentBlocks, 3)
			assert.Equal(t, "Innovation", c.ContentBlocks[1].Title)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c := GetDefaultTemplateContent(tt.id)
			assert.Equal(t, tt.heroTitle, c.HeroTitle)
			assert.Equal(t, "Get Started", c.HeroButtonText)
			assert.Empty(t, c.HeroImage)
			tt.check(t, c)
		})
	}
}

func TestGetDefaultTemplateContent_Unknown(t *testing.T) {
	assert.Equal(t, models.TemplateContent{}, GetDefaultTemplateContent("nope"))
	assert.Equal(t, models.TemplateContent{}, GetDefaultTemplateContent(""))
}

func TestMissingFields(t *testing.T) {
	c := GetDefaultTemplateContent(HeroProducts)
	assert.Equal(t, []string{"heroImage"}, MissingFields(HeroProducts, c))

	c.HeroImage = "https://img.example.com/a.jpg"
	assert.Empty(t, MissingFields(HeroProducts, c))

	assert.Empty(t, MissingFields(MinimalClean, GetDefaultTemplateContent(MinimalClean)))
}
