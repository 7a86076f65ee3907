package admin

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vitrine/builder"
	"vitrine/localstore"
	"vitrine/models"
	"vitrine/services"
	"vitrine/store"
	"vitrine/templates"
)

// wizardKey scopes a wizard to its owner, so one owner cannot open
// another's wizard by id.
func wizardKey(owner, id string) string {
	return "wizard:" + owner + ":" + id
}

type wizardView struct {
	Wizard        *builder.Wizard `json:"wizard"`
	Step          string          `json:"step"`
	SlugStatus    string          `json:"slugStatus"`
	MissingFields []string        `json:"missingFields"`
}

func viewWizard(wz *builder.Wizard) wizardView {
	return wizardView{
		Wizard:        wz,
		Step:          wz.Step.String(),
		SlugStatus:    wz.Slug.String(),
		MissingFields: wz.MissingFields(),
	}
}

func (a *AdminModule) saveDraft(c *gin.Context, wz *builder.Wizard) bool {
	if err := a.drafts.Put(c.Request.Context(), localstore.KindWizard, wizardKey(a.owner(c), wz.ID), wz); err != nil {
		a.log.Error("failed to persist wizard", zap.String("wizard", wz.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save wizard"})
		return false
	}
	return true
}

// loadWizard reads the wizard named by :id, answering 404 when it is gone.
func (a *AdminModule) loadWizard(c *gin.Context) (*builder.Wizard, bool) {
	var wz builder.Wizard
	found, err := a.drafts.Get(c.Request.Context(), wizardKey(a.owner(c), c.Param("id")), &wz)
	if err != nil {
		a.log.Error("failed to load wizard", zap.String("wizard", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load wizard"})
		return nil, false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "wizard not found"})
		return nil, false
	}
	return &wz, true
}

func (a *AdminModule) newWizard(c *gin.Context) {
	wz := builder.New()
	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusCreated, viewWizard(wz))
}

// editWizard opens the wizard on an existing website, at the first step.
func (a *AdminModule) editWizard(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	res := a.websites.GetWebsite(c.Request.Context(), id)
	if !res.Success {
		status := http.StatusBadGateway
		if res.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": res.Error})
		return
	}
	wz := builder.Edit(res.Data)
	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusCreated, viewWizard(wz))
}

func (a *AdminModule) getWizard(c *gin.Context) {
	wz, ok := a.loadWizard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewWizard(wz))
}

// stepUpdate carries the data of any wizard step; only the fields present
// are applied.
type stepUpdate struct {
	BasicInfo      *builder.BasicInfo      `json:"basicInfo"`
	TemplateID     string                  `json:"templateId"`
	Content        *models.TemplateContent `json:"content"`
	About          *models.AboutContent    `json:"about"`
	SEO            *models.SEO             `json:"seo"`
	Theme          string                  `json:"theme"`
	Customizations *models.Customizations  `json:"customizations"`
}

func (a *AdminModule) updateWizardStep(c *gin.Context) {
	wz, ok := a.loadWizard(c)
	if !ok {
		return
	}
	var up stepUpdate
	if err := c.ShouldBindJSON(&up); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if up.BasicInfo != nil {
		wz.SetBasicInfo(*up.BasicInfo)
		if wz.Slug == builder.SlugUnknown {
			wz.CheckSlug(c.Request.Context(), a.websites)
		}
	}
	if up.TemplateID != "" {
		if err := wz.SelectTemplate(up.TemplateID); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}
	if up.Content != nil {
		wz.SetContent(*up.Content)
	}
	if up.About != nil {
		wz.SetAbout(*up.About)
	}
	if up.SEO != nil {
		wz.SetSEO(*up.SEO)
	}
	if up.Theme != "" {
		if err := wz.SelectTheme(up.Theme); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}
	if up.Customizations != nil {
		wz.SetCustomizations(*up.Customizations)
	}

	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusOK, viewWizard(wz))
}

func (a *AdminModule) nextWizardStep(c *gin.Context) {
	wz, ok := a.loadWizard(c)
	if !ok {
		return
	}
	if err := wz.Next(); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, builder.ErrSlugTaken) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error(), "step": wz.Step.String()})
		return
	}
	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusOK, viewWizard(wz))
}

func (a *AdminModule) prevWizardStep(c *gin.Context) {
	wz, ok := a.loadWizard(c)
	if !ok {
		return
	}
	wz.Prev()
	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusOK, viewWizard(wz))
}

func (a *AdminModule) saveWizard(c *gin.Context) {
	a.finishWizard(c, (*builder.Wizard).SaveDraft)
}

func (a *AdminModule) publishWizard(c *gin.Context) {
	a.finishWizard(c, (*builder.Wizard).Publish)
}

type finishFunc func(wz *builder.Wizard, ctx context.Context, saver builder.WebsiteSaver) services.Result[models.Website]

// finishWizard runs a terminal action from the last step, then records the
// saved website in the store and keeps the wizard for further edits.
func (a *AdminModule) finishWizard(c *gin.Context, finish finishFunc) {
	st := a.storeOf(c)
	wz, ok := a.loadWizard(c)
	if !ok {
		return
	}
	if wz.Step != builder.StepCustomization {
		c.JSON(http.StatusConflict, gin.H{"error": "finish the remaining steps first", "step": wz.Step.String()})
		return
	}

	res := finish(wz, c.Request.Context(), a.websites)
	if !res.Success {
		a.log.Warn("wizard save failed", zap.String("wizard", wz.ID), zap.String("error", res.Error))
		c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
		return
	}

	websites := st.State().Websites
	merged := make([]models.Website, 0, len(websites)+1)
	replaced := false
	for _, w := range websites {
		if w.ID == res.Data.ID {
			merged = append(merged, res.Data)
			replaced = true
			continue
		}
		merged = append(merged, w)
	}
	if !replaced {
		merged = append(merged, res.Data)
	}
	st.Dispatch(store.SetWebsites{Websites: merged})
	a.clearSite(wz.Website.Slug)

	if !a.saveDraft(c, wz) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"website": res.Data, "wizard": viewWizard(wz)})
}

func (a *AdminModule) listTemplates(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, templates.GetTemplatesByCategory(category))
		return
	}
	c.JSON(http.StatusOK, templates.All())
}

func (a *AdminModule) listThemes(c *gin.Context) {
	c.JSON(http.StatusOK, builder.Themes())
}
