// Package ui is the interactive storefront: a terminal grid of product
// cards with search, category chips, sort cycling, a session cart, and
// Telegram sharing.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#2E7D32")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("240")
	colorBorder  = lipgloss.Color("238")
	colorDanger  = lipgloss.Color("#e53935")
	colorGold    = lipgloss.Color("#FFC107")
)

// Styles holds every styled component of the storefront screen.
type Styles struct {
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Spinner   lipgloss.Style
	Toast     lipgloss.Style
	SearchBar lipgloss.Style

	Chip       lipgloss.Style
	ChipActive lipgloss.Style

	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardName     lipgloss.Style
	CardCode     lipgloss.Style
	CardPrice    lipgloss.Style
	CardBadge    lipgloss.Style
	Skeleton     lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	CartLine   lipgloss.Style
	CartActive lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorPrimary).
			Padding(0, 2).
			Bold(true),
		Footer:  lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Title:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(colorAccent),
		Toast:   lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorGold).Padding(0, 1),
		SearchBar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		Chip: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		ChipActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorPrimary).
			Padding(0, 1).
			Bold(true),

		Card:         card,
		CardSelected: card.BorderForeground(colorAccent),
		CardName:     lipgloss.NewStyle().Bold(true),
		CardCode:     lipgloss.NewStyle().Foreground(colorMuted),
		CardPrice:    lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		CardBadge:    lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorGold).Padding(0, 1),
		Skeleton:     lipgloss.NewStyle().Foreground(colorBorder),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
		PanelTitle: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		CartLine:   lipgloss.NewStyle(),
		CartActive: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	}
}

// Divider renders a horizontal rule of the given width.
func (s Styles) Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
