package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Highlight      lipgloss.Style
	SelectionBg    lipgloss.Style
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	Button         lipgloss.Style
	Suggestion     lipgloss.Style
	FacetTitle     lipgloss.Style
	FacetPanel     lipgloss.Style
	ChartPanel     lipgloss.Style
	Checked        lipgloss.Style
	Count          lipgloss.Style
	Page           lipgloss.Style
	CurrentPage    lipgloss.Style
	StatusError    lipgloss.Style
	StatusLoading  lipgloss.Style
	StatusSuccess  lipgloss.Style
	Location       lipgloss.Style
	SearchTab      lipgloss.Style
	SearchTabFocus lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(2),
		FacetTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		FacetPanel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("241")).
			PaddingRight(1).
			MarginRight(1),
		ChartPanel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			PaddingLeft(1).
			MarginLeft(1),
		Checked:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Count:          lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Page:           lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		CurrentPage:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Underline(true),
		StatusError:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Location:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		SearchTab:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
		SearchTabFocus: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true).Padding(0, 1),
	}
}
