package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Drop      lipgloss.Color
	Exit      lipgloss.Color
	Glow      lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:      "night",
		Primary:   lipgloss.Color("#96c8ff"),
		Secondary: lipgloss.Color("#2888ff"),
		Drop:      lipgloss.Color("#ffffff"),
		Exit:      lipgloss.Color("#a0c8ff"),
		Glow:      lipgloss.Color("#288cff"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4a5a70"),
	}

	ThemeStorm = Theme{
		Name:      "storm",
		Primary:   lipgloss.Color("#c0c8d0"),
		Secondary: lipgloss.Color("#ffee55"),
		Drop:      lipgloss.Color("#c0c8d0"),
		Exit:      lipgloss.Color("#8090a0"),
		Glow:      lipgloss.Color("#ffee55"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#505860"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Drop:      lipgloss.Color("#ffffff"),
		Exit:      lipgloss.Color("#888888"),
		Glow:      lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
	}

	ThemeRetro = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Drop:      lipgloss.Color("#00ff00"),
		Exit:      lipgloss.Color("#88ff88"),
		Glow:      lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	CurrentTheme = ThemeNight

	Themes = []Theme{ThemeNight, ThemeStorm, ThemeMinimal, ThemeRetro}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after the current one, wrapping around.
func NextTheme() string {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// PenStyles returns the canvas styles for t.
func (t Theme) PenStyles() [numPens]lipgloss.Style {
	return [numPens]lipgloss.Style{
		PenDrop: lipgloss.NewStyle().Foreground(t.Drop),
		PenExit: lipgloss.NewStyle().Foreground(t.Exit),
		PenGlow: lipgloss.NewStyle().Foreground(t.Glow).Bold(true),
	}
}
