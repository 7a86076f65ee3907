package builder

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"vitrine/models"
	"vitrine/render"
	"vitrine/services"
	"vitrine/templates"
)

type Step int

const (
	StepBasicInfo Step = iota + 1
	StepTemplateSelection
	StepTemplateContent
	StepAboutContent
	StepTheme
	StepCustomization
)

var stepNames = map[Step]string{
	StepBasicInfo:         "Basic Info",
	StepTemplateSelection: "Template",
	StepTemplateContent:   "Content",
	StepAboutContent:      "About",
	StepTheme:             "Theme",
	StepCustomization:     "Customize",
}

func (s Step) String() string {
	return stepNames[s]
}

var (
	ErrRequiredField   = errors.New("required field missing")
	ErrSlugTaken       = errors.New("this URL is not available")
	ErrSlugTooShort    = fmt.Errorf("URL must be at least %d characters", minSlugLength)
	ErrUnknownTemplate = errors.New("unknown template")
	ErrUnknownTheme    = errors.New("unknown theme")
)

var Categories = []string{"business", "fashion", "technology", "food", "health", "education", "other"}

const DefaultCategory = "business"

// Wizard is the builder's working copy of a website between requests.
type Wizard struct {
	ID        string         `json:"id"`
	EditingID int            `json:"editingId,omitempty"`
	Step      Step           `json:"step"`
	Slug      SlugStatus     `json:"slugStatus"`
	Website   models.Website `json:"website"`
}

// New starts an empty wizard for a new website.
func New() *Wizard {
	return &Wizard{
		ID:   uuid.NewString(),
		Step: StepBasicInfo,
		Website: models.Website{
			Category:       DefaultCategory,
			Theme:          DefaultTheme,
			Status:         models.WebsiteDraft,
			Customizations: render.DefaultCustomizations(),
		},
	}
}

// Edit re-enters the wizard at the first step with w pre-populated.
func Edit(w models.Website) *Wizard {
	if w.Category == "" {
		w.Category = DefaultCategory
	}
	if w.Theme == "" {
		w.Theme = DefaultTheme
	}
	return &Wizard{
		ID:        uuid.NewString(),
		EditingID: w.ID,
		Step:      StepBasicInfo,
		Slug:      SlugAvailable,
		Website:   w,
	}
}

func (wz *Wizard) IsEditing() bool {
	return wz.EditingID > 0
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
	slugDashes  = regexp.MustCompile(`--+`)
)

// CleanSlug lower-cases the input, drops everything but a-z, 0-9 and '-',
// and collapses runs of dashes.
func CleanSlug(s string) string {
	s = slugInvalid.ReplaceAllString(strings.ToLower(s), "")
	return slugDashes.ReplaceAllString(s, "-")
}

type BasicInfo struct {
	Name        string `json:"name" form:"name"`
	Slug        string `json:"slug" form:"slug"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	LogoURL     string `json:"logoUrl" form:"logoUrl"`
}

func (wz *Wizard) SetBasicInfo(b BasicInfo) {
	w := &wz.Website
	w.Name = strings.TrimSpace(b.Name)
	w.Description = b.Description
	w.LogoURL = b.LogoURL
	w.Category = b.Category
	if w.Category == "" {
		w.Category = DefaultCategory
	}

	slug := CleanSlug(b.Slug)
	if slug != w.Slug {
		w.Slug = slug
		wz.Slug = SlugUnknown
	}
}

// CheckSlug refreshes the slug availability using lookup.
func (wz *Wizard) CheckSlug(ctx context.Context, lookup SlugLookup) SlugStatus {
	wz.Slug = CheckSlug(ctx, lookup, wz.Website.Slug, wz.EditingID)
	return wz.Slug
}

// SelectTemplate records the template and fills any content field the
// owner has not typed yet from the template defaults.
func (wz *Wizard) SelectTemplate(id string) error {
	d, ok := templates.GetTemplateByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	wz.Website.Template = d.Ref()
	wz.Website.Content = prefill(wz.Website.Content, templates.GetDefaultTemplateContent(id))
	return nil
}

func prefill(typed, defaults models.TemplateContent) models.TemplateContent {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&typed.HeroTitle, defaults.HeroTitle)
	fill(&typed.HeroDescription, defaults.HeroDescription)
	fill(&typed.HeroImage, defaults.HeroImage)
	fill(&typed.HeroButtonText, defaults.HeroButtonText)
	fill(&typed.ProductSectionTitle, defaults.ProductSectionTitle)
	fill(&typed.BlogSectionTitle, defaults.BlogSectionTitle)
	fill(&typed.PortfolioTitle, defaults.PortfolioTitle)
	if len(typed.Services) == 0 {
		typed.Services = defaults.Services
	}
	if len(typed.ContentBlocks) == 0 {
		typed.ContentBlocks = defaults.ContentBlocks
	}
	if len(typed.Testimonials) == 0 {
		typed.Testimonials = defaults.Testimonials
	}
	return typed
}

func (wz *Wizard) SetContent(c models.TemplateContent) {
	wz.Website.Content = c
}

func (wz *Wizard) SetAbout(a models.AboutContent) {
	a.Features = nonBlank(a.Features)
	wz.Website.About = a
}

func (wz *Wizard) SetSEO(s models.SEO) {
	wz.Website.SEO = s
}

func (wz *Wizard) SetCustomizations(c models.Customizations) {
	wz.Website.Customizations = render.ResolveTheme(c)
}

// MissingFields lists the chosen template's required content left blank.
func (wz *Wizard) MissingFields() []string {
	return templates.MissingFields(wz.Website.Template.ID, wz.Website.Content)
}

// Next advances one step unless the current step's guard fails.
func (wz *Wizard) Next() error {
	if err := wz.guard(); err != nil {
		return err
	}
	if wz.Step < StepCustomization {
		wz.Step++
	}
	return nil
}

func (wz *Wizard) Prev() {
	if wz.Step > StepBasicInfo {
		wz.Step--
	}
}

func (wz *Wizard) guard() error {
	w := wz.Website
	switch wz.Step {
	case StepBasicInfo:
		if w.Name == "" {
			return fmt.Errorf("%w: name", ErrRequiredField)
		}
		if w.Slug == "" {
			return fmt.Errorf("%w: slug", ErrRequiredField)
		}
		if len(w.Slug) < minSlugLength {
			return ErrSlugTooShort
		}
		if wz.Slug == SlugTaken {
			return ErrSlugTaken
		}
	case StepTemplateSelection:
		if w.Template.ID == "" {
			return fmt.Errorf("%w: template", ErrRequiredField)
		}
	case StepTheme:
		if w.Theme == "" {
			return fmt.Errorf("%w: theme", ErrRequiredField)
		}
	}
	return nil
}

// WebsiteSaver is the part of the website service the wizard writes through.
type WebsiteSaver interface {
	CreateWebsite(ctx context.Context, w models.Website) services.Result[models.Website]
	UpdateWebsite(ctx context.Context, id int, w models.Website) services.Result[models.Website]
}

// SaveDraft stores the website with draft status.
func (wz *Wizard) SaveDraft(ctx context.Context, saver WebsiteSaver) services.Result[models.Website] {
	return wz.save(ctx, saver, models.WebsiteDraft)
}

// Publish stores the website with published status.
func (wz *Wizard) Publish(ctx context.Context, saver WebsiteSaver) services.Result[models.Website] {
	return wz.save(ctx, saver, models.WebsitePublished)
}

func (wz *Wizard) save(ctx context.Context, saver WebsiteSaver, status models.WebsiteStatus) services.Result[models.Website] {
	w := wz.Website
	w.Status = status

	var res services.Result[models.Website]
	if wz.IsEditing() {
		res = saver.UpdateWebsite(ctx, wz.EditingID, w)
	} else {
		res = saver.CreateWebsite(ctx, w)
	}
	if !res.Success {
		return services.Result[models.Website]{Error: "Failed to save website: " + res.Error}
	}

	wz.Website.Status = status
	if res.Data.ID > 0 {
		wz.EditingID = res.Data.ID
		wz.Website.ID = res.Data.ID
	}
	return res
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
