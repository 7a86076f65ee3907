package render

import "vitrine/templates"

// Layout is the closed set of homepage layouts. LayoutDefault is the zero
// value so an unset layout is always renderable.
type Layout int

const (
	LayoutDefault Layout = iota
	LayoutHeroProducts
	LayoutTextImageSplit
	LayoutBlogFocused
	LayoutProductsBlogsCombo
	LayoutImageLeftContent
	LayoutMinimalClean

	layoutCount
)

var layoutIDs = [layoutCount]string{
	LayoutDefault:            "default",
	LayoutHeroProducts:       templates.HeroProducts,
	LayoutTextImageSplit:     templates.TextImageSplit,
	LayoutBlogFocused:        templates.BlogFocused,
	LayoutProductsBlogsCombo: templates.ProductsBlogsCombo,
	LayoutImageLeftContent:   templates.ImageLeftContent,
	LayoutMinimalClean:       templates.MinimalClean,
}

func (l Layout) String() string {
	if l < 0 || l >= layoutCount {
		return layoutIDs[LayoutDefault]
	}
	return layoutIDs[l]
}

// ParseLayout maps a stored template id onto a Layout. Empty and unknown
// ids map to LayoutDefault.
func ParseLayout(id string) Layout {
	for l := LayoutDefault + 1; l < layoutCount; l++ {
		if layoutIDs[l] == id {
			return l
		}
	}
	return LayoutDefault
}

// Layouts lists every layout, default first.
func Layouts() []Layout {
	out := make([]Layout, 0, layoutCount)
	for l := LayoutDefault; l < layoutCount; l++ {
		out = append(out, l)
	}
	return out
}

// Collection sizes used when the template metadata leaves a count unset.
type counts struct {
	products int
	blogs    int
}

var defaultCounts = [layoutCount]counts{
	LayoutDefault:            {products: 6, blogs: 3},
	LayoutHeroProducts:       {products: 6, blogs: 3},
	LayoutTextImageSplit:     {products: 6, blogs: 3},
	LayoutBlogFocused:        {products: 3, blogs: 6},
	LayoutProductsBlogsCombo: {products: 4, blogs: 3},
	LayoutImageLeftContent:   {products: 8, blogs: 3},
	LayoutMinimalClean:       {products: 6, blogs: 3},
}
