package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the preview. Image and Text color the two
// modalities the way the rendered frames do.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Image  lipgloss.Color
	Text   lipgloss.Color
	Link   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Title:  lipgloss.Color("#00ffff"),
		Image:  lipgloss.Color("#3f83f8"),
		Text:   lipgloss.Color("#f05252"),
		Link:   lipgloss.Color("#555566"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#00ff88"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#00ff00"),
		Image:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#ffff00"),
		Link:   lipgloss.Color("#005500"),
		Muted:  lipgloss.Color("#007700"),
		Accent: lipgloss.Color("#00cc00"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Title:  lipgloss.Color("#00a8cc"),
		Image:  lipgloss.Color("#0077be"),
		Text:   lipgloss.Color("#ffd700"),
		Link:   lipgloss.Color("#224466"),
		Muted:  lipgloss.Color("#4488aa"),
		Accent: lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Title:  lipgloss.Color("#feca57"),
		Image:  lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#ff6b6b"),
		Link:   lipgloss.Color("#5d3b5e"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#5fd068"),
	}

	Themes = []Theme{ThemeClassic, ThemeRetroGreen, ThemeOcean, ThemeSunset}
)

// GetTheme returns a theme by name, or the classic theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// inks maps canvas inks to the theme's styles.
func (t Theme) inks() map[Ink]lipgloss.Style {
	return map[Ink]lipgloss.Style{
		InkNone:  lipgloss.NewStyle().Foreground(t.Muted),
		InkLink:  lipgloss.NewStyle().Foreground(t.Link),
		InkImage: lipgloss.NewStyle().Foreground(t.Image).Bold(true),
		InkText:  lipgloss.NewStyle().Foreground(t.Text).Bold(true),
	}
}
