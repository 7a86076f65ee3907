package render

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"vitrine/models"
)

const (
	DefaultPrimary     = "#3b82f6"
	DefaultSecondary   = "#64748b"
	DefaultAccent      = "#059669"
	DefaultBackground  = "#ffffff"
	DefaultText        = "#1f2937"
	DefaultFont        = "Inter"
	DefaultLayoutStyle = "modern"
	DefaultHeaderStyle = "centered"
)

// DefaultCustomizations is what a brand new website starts with.
func DefaultCustomizations() models.Customizations {
	return models.Customizations{
		Colors: models.Colors{
			Primary:    DefaultPrimary,
			Secondary:  DefaultSecondary,
			Accent:     DefaultAccent,
			Background: DefaultBackground,
			Text:       DefaultText,
		},
		Typography: models.Typography{HeadingFont: DefaultFont, BodyFont: DefaultFont},
		Layout:     models.LayoutSettings{Style: DefaultLayoutStyle, HeaderStyle: DefaultHeaderStyle},
	}
}

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbColor   = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*(0|1|0?\.\d+)\s*)?\)$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	fontName   = regexp.MustCompile(`^[A-Za-z0-9 -]{1,60}$`)
	styleName  = regexp.MustCompile(`^[a-z0-9-]{1,30}$`)
)

// ResolveTheme fills every blank or malformed customization field from the
// defaults. Colors come out as hex or a plain color name, fonts as letters,
// digits, spaces and single dashes.
func ResolveTheme(c models.Customizations) models.Customizations {
	d := DefaultCustomizations()
	return models.Customizations{
		Colors: models.Colors{
			Primary:    color(c.Colors.Primary, d.Colors.Primary),
			Secondary:  color(c.Colors.Secondary, d.Colors.Secondary),
			Accent:     color(c.Colors.Accent, d.Colors.Accent),
			Background: color(c.Colors.Background, d.Colors.Background),
			Text:       color(c.Colors.Text, d.Colors.Text),
		},
		Typography: models.Typography{
			HeadingFont: font(c.Typography.HeadingFont, d.Typography.HeadingFont),
			BodyFont:    font(c.Typography.BodyFont, d.Typography.BodyFont),
		},
		Layout: models.LayoutSettings{
			Style:       matching(styleName, c.Layout.Style, d.Layout.Style),
			HeaderStyle: matching(styleName, c.Layout.HeaderStyle, d.Layout.HeaderStyle),
		},
	}
}

func color(v, fallback string) string {
	v = strings.TrimSpace(v)
	switch {
	case hexColor.MatchString(v), namedColor.MatchString(v):
		return v
	}
	m := rgbColor.FindStringSubmatch(strings.ToLower(v))
	if m == nil {
		return fallback
	}
	var rgb [3]int
	for i := range rgb {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return fallback
		}
		rgb[i] = n
	}
	hex := fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
	if m[4] != "" {
		alpha, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return fallback
		}
		hex += fmt.Sprintf("%02x", int(math.Round(alpha*255)))
	}
	return hex
}

func font(v, fallback string) string {
	v = strings.TrimSpace(v)
	if strings.Contains(v, "--") {
		return fallback
	}
	return matching(fontName, v, fallback)
}

func matching(re *regexp.Regexp, v, fallback string) string {
	if !re.MatchString(v) {
		return fallback
	}
	return v
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
