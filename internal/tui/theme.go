package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuidrill/internal/model"
)

type palette struct {
	text     string
	wrong    string
	pending  string
	current  string
	muted    string
	accent   string
	success  string
	selected string
}

var (
	darkPalette = palette{
		text:     "#F0F0F0",
		wrong:    "#FF4D4F",
		pending:  "#8C8C8C",
		current:  "#C89A3A",
		muted:    "#6E6E6E",
		accent:   "#C89A3A",
		success:  "#52C41A",
		selected: "#3A3A3A",
	}
	lightPalette = palette{
		text:     "#1F1F1F",
		wrong:    "#CF1322",
		pending:  "#A6A6A6",
		current:  "#AD6800",
		muted:    "#8C8C8C",
		accent:   "#AD6800",
		success:  "#389E0D",
		selected: "#E6E6E6",
	}
)

type styles struct {
	correct     lipgloss.Style
	incorrect   lipgloss.Style
	pending     lipgloss.Style
	currentWord lipgloss.Style
	cursor      lipgloss.Style
	footer      lipgloss.Style
	header      lipgloss.Style
	title       lipgloss.Style
	complete    lipgloss.Style
	errorText   lipgloss.Style
	selected    lipgloss.Style
	panel       lipgloss.Style
}

func newStyles(theme model.Theme) styles {
	p := darkPalette
	if theme == model.ThemeLight {
		p = lightPalette
	}
	pending := lipgloss.NewStyle().Foreground(lipgloss.Color(p.pending))
	return styles{
		correct:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)),
		incorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.wrong)),
		pending:     pending,
		currentWord: lipgloss.NewStyle().Foreground(lipgloss.Color(p.current)),
		cursor:      pending.Underline(true),
		footer:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		title:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Bold(true),
		complete:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.success)).Bold(true),
		errorText:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.wrong)),
		selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Background(lipgloss.Color(p.selected)),
		panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(p.accent)),
	}
}

func toggleTheme(theme model.Theme) model.Theme {
	if theme == model.ThemeLight {
		return model.ThemeDark
	}
	return model.ThemeLight
}
