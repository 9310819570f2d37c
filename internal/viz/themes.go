package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme pairs panel colors with plot series colors.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Muted   lipgloss.Color
	Demand  asciigraph.AnsiColor
	Supply  asciigraph.AnsiColor
	Axis    asciigraph.AnsiColor
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Primary: lipgloss.Color("#00ffff"),
		Muted:   lipgloss.Color("#666688"),
		Demand:  asciigraph.Red,
		Supply:  asciigraph.Blue,
		Axis:    asciigraph.Default,
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Demand:  asciigraph.Green,
		Supply:  asciigraph.Yellow,
		Axis:    asciigraph.Green,
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Demand:  asciigraph.Default,
		Supply:  asciigraph.Default,
		Axis:    asciigraph.Default,
	}
)

var Themes = []Theme{ThemeClassic, ThemeRetroGreen, ThemeMinimal}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}
