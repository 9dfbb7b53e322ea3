package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the live view.
type Theme struct {
	Name     string
	Primary  lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Running  lipgloss.Color
	Paused   lipgloss.Color
	Complete lipgloss.Color
	Warning  lipgloss.Color
}

var (
	ThemeTerminal = Theme{
		Name:     "terminal",
		Primary:  lipgloss.Color("86"),
		Accent:   lipgloss.Color("205"),
		Text:     lipgloss.Color("252"),
		Muted:    lipgloss.Color("240"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffaa00"),
		Complete: lipgloss.Color("#00ccff"),
		Warning:  lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Primary:  lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Running:  lipgloss.Color("#88ff88"),
		Paused:   lipgloss.Color("#ffff00"),
		Complete: lipgloss.Color("#00cc00"),
		Warning:  lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Primary:  lipgloss.Color("#0077be"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Running:  lipgloss.Color("#00ff88"),
		Paused:   lipgloss.Color("#ffcc00"),
		Complete: lipgloss.Color("#00a8cc"),
		Warning:  lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeTerminal, ThemeRetroGreen, ThemeOcean}
)

// GetTheme returns a theme by name, or the terminal theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTerminal
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
