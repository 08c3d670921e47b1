package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for reports and the progress view.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Chaotic lipgloss.Color // positive exponents
	Neutral lipgloss.Color // exponents inside ZeroBand
	Stable  lipgloss.Color // negative exponents
}

var (
	ThemeDefault = Theme{
		Name:    "default",
		Primary: lipgloss.Color("86"),
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("245"),
		Chaotic: lipgloss.Color("#ff5f5f"),
		Neutral: lipgloss.Color("#ffcc00"),
		Stable:  lipgloss.Color("#00d787"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Chaotic: lipgloss.Color("#ffffff"),
		Neutral: lipgloss.Color("#cccccc"),
		Stable:  lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Chaotic: lipgloss.Color("#ff4444"),
		Neutral: lipgloss.Color("#ffd700"),
		Stable:  lipgloss.Color("#00ff88"),
	}

	Themes = []Theme{
		ThemeDefault,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeDefault, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
