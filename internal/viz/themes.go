package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the live view
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Street  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Growing lipgloss.Color
	Paused  lipgloss.Color
	Settled lipgloss.Color
}

// Available themes, named after the PNG render styles
var (
	ThemeInk = Theme{
		Name:    "ink",
		Title:   lipgloss.Color("#e8e2d4"),
		Street:  lipgloss.Color("#d8d2c4"),
		Accent:  lipgloss.Color("#c96f4a"),
		Text:    lipgloss.Color("#cccccc"),
		Muted:   lipgloss.Color("#666666"),
		Growing: lipgloss.Color("#7fbf7f"),
		Paused:  lipgloss.Color("#e2b35c"),
		Settled: lipgloss.Color("#8899aa"),
	}

	ThemePencil = Theme{
		Name:    "pencil",
		Title:   lipgloss.Color("#aaaaaa"),
		Street:  lipgloss.Color("#999999"),
		Accent:  lipgloss.Color("#cfa75e"),
		Text:    lipgloss.Color("#bbbbbb"),
		Muted:   lipgloss.Color("#555555"),
		Growing: lipgloss.Color("#88cc88"),
		Paused:  lipgloss.Color("#ccaa55"),
		Settled: lipgloss.Color("#888888"),
	}

	ThemeBlueprint = Theme{
		Name:    "blueprint",
		Title:   lipgloss.Color("#9cc4e4"),
		Street:  lipgloss.Color("#bcd8f0"),
		Accent:  lipgloss.Color("#ffd27f"),
		Text:    lipgloss.Color("#d0e4f4"),
		Muted:   lipgloss.Color("#4a6b8a"),
		Growing: lipgloss.Color("#7fe0b0"),
		Paused:  lipgloss.Color("#ffcc66"),
		Settled: lipgloss.Color("#9cc4e4"),
	}

	// Default theme
	CurrentTheme = ThemeInk

	// All available themes
	Themes = []Theme{
		ThemeInk,
		ThemePencil,
		ThemeBlueprint,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeInk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
