package builder

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/models"
	"vitrine/services"
	"vitrine/templates"
)

type fakeLookup map[string]models.Website

func (f fakeLookup) GetWebsiteBySlug(_ context.Context, slug string) services.Result[models.Website] {
	w, ok := f[slug]
	if !ok {
		return services.Result[models.Website]{Error: "Not found.", NotFound: true}
	}
	return services.Result[models.Website]{Success: true, Data: w}
}

type fakeSaver struct {
	created []models.Website
	updated map[int]models.Website
	fail    string
}

func (f *fakeSaver) CreateWebsite(_ context.Context, w models.Website) services.Result[models.Website] {
	if f.fail != "" {
		return services.Result[models.Website]{Error: f.fail}
	}
	w.ID = 42
	f.created = append(f.created, w)
	return services.Result[models.Website]{Success: true, Data: w}
}

func (f *fakeSaver) UpdateWebsite(_ context.Context, id int, w models.Website) services.Result[models.Website] {
	if f.updated == nil {
		f.updated = map[int]models.Website{}
	}
	w.ID = id
	f.updated[id] = w
	return services.Result[models.Website]{Success: true, Data: w}
}

func TestCleanSlug(t *testing.T) {
	tests := map[string]string{
		"My Shop!":       "myshop",
		"Acme--Tools":    "acme-tools",
		"a---b----c":     "a-b-c",
		"Café_Du_Monde":  "cafdumonde",
		"already-clean1": "already-clean1",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanSlug(in), in)
	}
}

func TestCheckSlug(t *testing.T) {
	ctx := context.Background()
	lookup := fakeLookup{"taken": {ID: 7, Slug: "taken"}}

	assert.Equal(t, SlugUnknown, CheckSlug(ctx, lookup, "ab", 0))
	assert.Equal(t, SlugTaken, CheckSlug(ctx, lookup, "admin", 0))
	assert.Equal(t, SlugTaken, CheckSlug(ctx, nil, "www", 0))
	assert.Equal(t, SlugTaken, CheckSlug(ctx, lookup, "taken", 0))
	assert.Equal(t, SlugAvailable, CheckSlug(ctx, lookup, "taken", 7))
	assert.Equal(t, SlugAvailable, CheckSlug(ctx, lookup, "fresh", 0))
}

func TestNew_Defaults(t *testing.T) {
	wz := New()
	assert.NotEmpty(t, wz.ID)
	assert.Equal(t, StepBasicInfo, wz.Step)
	assert.Equal(t, "business", wz.Website.Category)
	assert.Equal(t, "modern", wz.Website.Theme)
	assert.Equal(t, "#3b82f6", wz.Website.Customizations.Colors.Primary)
	assert.False(t, wz.IsEditing())
}

func TestNext_Guards(t *testing.T) {
	ctx := context.Background()
	wz := New()

	require.ErrorIs(t, wz.Next(), ErrRequiredField)

	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "Taken"})
	wz.CheckSlug(ctx, fakeLookup{"taken": {ID: 1}})
	require.ErrorIs(t, wz.Next(), ErrSlugTaken)
	assert.Equal(t, StepBasicInfo, wz.Step)

	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "acme"})
	assert.Equal(t, SlugUnknown, wz.Slug)
	require.NoError(t, wz.Next())
	assert.Equal(t, StepTemplateSelection, wz.Step)

	require.ErrorIs(t, wz.Next(), ErrRequiredField)
	require.NoError(t, wz.SelectTemplate(templates.HeroProducts))
	require.NoError(t, wz.Next())
	require.NoError(t, wz.Next())
	require.NoError(t, wz.Next())
	assert.Equal(t, StepTheme, wz.Step)

	wz.Website.Theme = ""
	require.ErrorIs(t, wz.Next(), ErrRequiredField)
	require.NoError(t, wz.SelectTheme("creative"))
	require.NoError(t, wz.Next())
	assert.Equal(t, StepCustomization, wz.Step)

	require.NoError(t, wz.Next())
	assert.Equal(t, StepCustomization, wz.Step)

	wz.Prev()
	assert.Equal(t, StepTheme, wz.Step)
}

func TestNext_ShortSlugStaysOnBasicInfo(t *testing.T) {
	wz := New()
	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "a"})
	wz.CheckSlug(context.Background(), fakeLookup{})
	assert.Equal(t, SlugUnknown, wz.Slug)

	require.ErrorIs(t, wz.Next(), ErrSlugTooShort)
	assert.Equal(t, StepBasicInfo, wz.Step)

	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "abc"})
	require.NoError(t, wz.Next())
	assert.Equal(t, StepTemplateSelection, wz.Step)
}

func TestPrev_StopsAtFirstStep(t *testing.T) {
	wz := New()
	wz.Prev()
	assert.Equal(t, StepBasicInfo, wz.Step)
}

func TestSelectTemplate_KeepsTypedFields(t *testing.T) {
	wz := New()
	wz.SetContent(models.TemplateContent{HeroTitle: "Mine", Services: []string{"Repairs"}})

	require.NoError(t, wz.SelectTemplate(templates.TextImageSplit))

	c := wz.Website.Content
	assert.Equal(t, "Mine", c.HeroTitle)
	assert.Equal(t, "We provide comprehensive business solutions tailored to your needs", c.HeroDescription)
	assert.Equal(t, []string{"Repairs"}, c.Services)
	assert.Equal(t, "text-image-split", wz.Website.Template.ID)
	assert.True(t, wz.Website.Template.Metadata.HasContactForm)

	require.ErrorIs(t, wz.SelectTemplate("nope"), ErrUnknownTemplate)
}

func TestSelectTheme(t *testing.T) {
	wz := New()
	require.NoError(t, wz.SelectTheme("corporate"))
	assert.Equal(t, "#1f2937", wz.Website.Customizations.Colors.Primary)
	assert.Equal(t, "#6b7280", wz.Website.Customizations.Colors.Secondary)
	assert.Equal(t, "#059669", wz.Website.Customizations.Colors.Accent)

	require.ErrorIs(t, wz.SelectTheme("neon"), ErrUnknownTheme)
	assert.Len(t, Themes(), 4)
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	saver := &fakeSaver{}

	wz := New()
	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "acme"})

	res := wz.SaveDraft(ctx, saver)
	require.True(t, res.Success)
	require.Len(t, saver.created, 1)
	assert.Equal(t, models.WebsiteDraft, saver.created[0].Status)
	assert.Equal(t, 42, wz.EditingID)

	res = wz.Publish(ctx, saver)
	require.True(t, res.Success)
	assert.Len(t, saver.created, 1)
	assert.Equal(t, models.WebsitePublished, saver.updated[42].Status)
	assert.Equal(t, models.WebsitePublished, wz.Website.Status)
}

func TestSave_Failure(t *testing.T) {
	wz := New()
	res := wz.SaveDraft(context.Background(), &fakeSaver{fail: "slug exists"})
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to save website: slug exists", res.Error)
	assert.Equal(t, models.WebsiteDraft, wz.Website.Status)
	assert.Zero(t, wz.EditingID)
}

// Saving and reopening must reproduce every field the builder writes.
func TestSaveThenEdit_RoundTrip(t *testing.T) {
	ctx := context.Background()
	saver := &fakeSaver{}

	wz := New()
	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "acme", Description: "Tools", Category: "technology", LogoURL: "https://x/logo.png"})
	require.NoError(t, wz.SelectTemplate(templates.ImageLeftContent))
	wz.Website.Content.Testimonials = []models.Testimonial{{Name: "Jo", Role: "CEO", Quote: "Great"}}
	wz.SetAbout(models.AboutContent{
		CompanyStory: "Since 1999",
		Mission:      "Build",
		Features:     []string{"Fast", " ", "Cheap"},
		TeamInfo:     "Ten people",
		ContactInfo:  models.ContactInfo{Email: "hi@acme.test", Phone: "555"},
	})
	wz.SetSEO(models.SEO{Title: "Acme", Description: "Tools", Keywords: "tools"})
	require.NoError(t, wz.SelectTheme("minimal"))

	res := wz.Publish(ctx, saver)
	require.True(t, res.Success)

	// What the backend stores is the flat wire payload.
	raw, err := json.Marshal(saver.created[0])
	require.NoError(t, err)
	var stored models.Website
	require.NoError(t, json.Unmarshal(raw, &stored))

	reopened := Edit(stored)
	assert.Equal(t, StepBasicInfo, reopened.Step)
	assert.Equal(t, 42, reopened.EditingID)
	assert.Equal(t, SlugAvailable, reopened.Slug)

	want := wz.Website
	got := reopened.Website
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Slug, got.Slug)
	assert.Equal(t, want.Description, got.Description)
	assert.Equal(t, want.Category, got.Category)
	assert.Equal(t, want.LogoURL, got.LogoURL)
	assert.Equal(t, want.Template, got.Template)
	assert.Equal(t, want.Content, got.Content)
	assert.Equal(t, want.Customizations, got.Customizations)
	assert.Equal(t, want.Theme, got.Theme)
	assert.Equal(t, want.About, got.About)
	assert.Equal(t, want.SEO, got.SEO)
	assert.Equal(t, []string{"Fast", "Cheap"}, got.About.Features)
}

func TestWizard_JSONRoundTrip(t *testing.T) {
	wz := New()
	wz.SetBasicInfo(BasicInfo{Name: "Acme", Slug: "acme"})
	require.NoError(t, wz.SelectTemplate(templates.MinimalClean))
	wz.Step = StepAboutContent

	raw, err := json.Marshal(wz)
	require.NoError(t, err)

	var back Wizard
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, wz.ID, back.ID)
	assert.Equal(t, StepAboutContent, back.Step)
	assert.Equal(t, wz.Website.Content, back.Website.Content)
}
