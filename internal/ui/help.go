package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	// Title
	help.WriteString(titleStyle.Render("Searchalicious Help"))
	help.WriteString("\n")

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{r.keys.Up, r.keys.Down, r.keys.NextPage, r.keys.PrevPage, r.keys.Back, r.keys.Forward}},
		{"Search", []key.Binding{r.keys.Edit, r.keys.Submit, r.keys.Cancel, r.keys.Sort, r.keys.Open, r.keys.NextSearch}},
		{"Facets", []key.Binding{r.keys.Focus, r.keys.Toggle, r.keys.AddTerm, r.keys.Reset, r.keys.Charts}},
		{"Other", []key.Binding{r.keys.Help, r.keys.Quit}},
	}

	for _, section := range sections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc)))
		}
		help.WriteString("\n")
	}

	// Query examples
	exampleStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(exampleStyle.Render("  Query examples: pasta, brands:barilla, nutriscore_grade:a"))
	help.WriteString("\n")
	help.WriteString(exampleStyle.Render("  Suggestions: type in the query or term input, ↑/↓ to pick, enter to apply"))

	return help.String()
}
