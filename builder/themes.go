package builder

import "fmt"

type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Primary     string `json:"primary"`
	Secondary   string `json:"secondary"`
	Preview     string `json:"preview"`
}

const DefaultTheme = "modern"

var themes = []Theme{
	{ID: "modern", Name: "Modern", Description: "Clean and contemporary design", Primary: "#3b82f6", Secondary: "#64748b",
		Preview: "https://via.placeholder.com/300x200/3b82f6/ffffff?text=Modern"},
	{ID: "corporate", Name: "Corporate", Description: "Professional business theme", Primary: "#1f2937", Secondary: "#6b7280",
		Preview: "https://via.placeholder.com/300x200/1f2937/ffffff?text=Corporate"},
	{ID: "creative", Name: "Creative", Description: "Artistic and vibrant design", Primary: "#7c3aed", Secondary: "#a855f7",
		Preview: "https://via.placeholder.com/300x200/7c3aed/ffffff?text=Creative"},
	{ID: "minimal", Name: "Minimal", Description: "Simple and elegant layout", Primary: "#000000", Secondary: "#6b7280",
		Preview: "https://via.placeholder.com/300x200/000000/ffffff?text=Minimal"},
}

func Themes() []Theme {
	return append([]Theme(nil), themes...)
}

// SelectTheme records the theme and applies its primary and secondary colours.
func (wz *Wizard) SelectTheme(id string) error {
	for _, t := range themes {
		if t.ID == id {
			wz.Website.Theme = t.ID
			wz.Website.Customizations.Colors.Primary = t.Primary
			wz.Website.Customizations.Colors.Secondary = t.Secondary
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTheme, id)
}
