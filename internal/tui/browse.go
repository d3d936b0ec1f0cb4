// Package tui provides Bubble Tea models for terminal UI interactions.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chazuruo/flowdex/internal/catalog"
)

// BrowseModel is a Bubble Tea model for browsing a built workflow index.
type BrowseModel struct {
	// Index is the loaded workflow index.
	Index *catalog.Index

	// Results is the current filtered record list.
	Results []catalog.Record

	// cursor is the current cursor position in the results list.
	cursor int

	// SearchInput is the text input for the filter query.
	SearchInput textinput.Model

	// categoryFilter is the active category filter; empty means all.
	// Cycled with ctrl+f through the index's categories.
	categoryFilter int

	// Quit indicates whether the user quit without selecting.
	Quit bool

	// Confirmed indicates whether the user confirmed a selection.
	Confirmed bool

	// Selected is the confirmed record.
	Selected *catalog.Record

	// styles
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	previewStyle  lipgloss.Style
	headerStyle   lipgloss.Style
	metadataStyle lipgloss.Style
}

// NewBrowseModel creates a new browse model over an index.
func NewBrowseModel(idx *catalog.Index) BrowseModel {
	ti := textinput.New()
	ti.Placeholder = "Filter workflows..."
	ti.Focus()

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Bold(true)
	previewStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true)
	metadataStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	m := BrowseModel{
		Index:          idx,
		SearchInput:    ti,
		categoryFilter: -1,
		normalStyle:    normalStyle,
		selectedStyle:  selectedStyle,
		previewStyle:   previewStyle,
		headerStyle:    headerStyle,
		metadataStyle:  metadataStyle,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Quit = true
			return m, tea.Quit

		case "enter":
			if len(m.Results) > 0 {
				m.Confirmed = true
				rec := m.Results[m.cursor]
				m.Selected = &rec
			}
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down":
			if m.cursor < len(m.Results)-1 {
				m.cursor++
			}

		case "home":
			m.cursor = 0

		case "end":
			m.cursor = len(m.Results) - 1

		case "ctrl+f":
			// Cycle the category filter: all -> each category -> all.
			m.categoryFilter++
			if m.categoryFilter >= len(m.Index.Categories) {
				m.categoryFilter = -1
			}
			m.refresh()
		}
	}

	oldQuery := m.SearchInput.Value()
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	if m.SearchInput.Value() != oldQuery {
		m.refresh()
	}

	return m, cmd
}

// refresh re-runs the search with the current query and filter.
func (m *BrowseModel) refresh() {
	opts := catalog.SearchOptions{
		Query: m.SearchInput.Value(),
		Limit: len(m.Index.Workflows),
	}
	if m.categoryFilter >= 0 && m.categoryFilter < len(m.Index.Categories) {
		opts.Category = m.Index.Categories[m.categoryFilter]
	}

	m.Results = catalog.Search(m.Index, opts)
	if m.cursor >= len(m.Results) {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(m.headerStyle.Render("Workflow Index"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.metadataStyle.Render(
		"enter: select | ctrl+f: cycle category | esc: quit",
	))
	b.WriteString("\n\n")

	leftCol := m.renderResultsColumn(50)
	rightCol := m.renderPreviewColumn(60)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol))
	b.WriteString("\n")

	return b.String()
}

// renderResultsColumn renders the filter input and results column.
func (m BrowseModel) renderResultsColumn(width int) string {
	var b strings.Builder

	b.WriteString("  Filter: ")
	b.WriteString(m.SearchInput.View())
	b.WriteString("\n\n")

	if m.categoryFilter >= 0 && m.categoryFilter < len(m.Index.Categories) {
		b.WriteString("  ")
		b.WriteString(m.metadataStyle.Render("Category: " + m.Index.Categories[m.categoryFilter]))
		b.WriteString("\n\n")
	}

	b.WriteString("  ")
	b.WriteString(m.metadataStyle.Render(
		fmt.Sprintf("%d of %d workflow(s)", len(m.Results), m.Index.TotalCount),
	))
	b.WriteString("\n\n")

	if len(m.Results) == 0 {
		b.WriteString("  (no matches)")
	} else {
		// Show a visible window around the cursor.
		start := max(0, m.cursor-10)
		end := min(len(m.Results), m.cursor+11)

		for i := start; i < end; i++ {
			rec := m.Results[i]
			isCursor := i == m.cursor

			line := "  " + rec.Name
			maxLen := width - 6
			if len(line) > maxLen {
				line = line[:maxLen-3] + "..."
			}

			style := m.normalStyle
			if isCursor {
				style = m.selectedStyle
			}
			b.WriteString(style.Render(line) + "\n")

			if isCursor {
				b.WriteString("    ")
				b.WriteString(m.metadataStyle.Render("[" + rec.Category + "]"))
				b.WriteString("\n")
			}
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// renderPreviewColumn renders the preview column for the selected record.
func (m BrowseModel) renderPreviewColumn(width int) string {
	if len(m.Results) == 0 {
		return ""
	}

	rec := m.Results[m.cursor]

	var b strings.Builder
	b.WriteString("  Preview\n\n")

	b.WriteString("  Name:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.Name) + "\n\n")

	b.WriteString("  Slug:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.Slug) + "\n\n")

	b.WriteString("  Description:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.Description) + "\n\n")

	b.WriteString("  Category:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.Category) + "\n\n")

	if len(rec.Integrations) > 0 {
		b.WriteString("  Integrations:\n")
		b.WriteString("    " + m.previewStyle.Render(strings.Join(rec.Integrations, ", ")) + "\n\n")
	}

	b.WriteString("  Path:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.GHPath) + "\n\n")

	b.WriteString("  Updated:\n")
	b.WriteString("    " + m.previewStyle.Render(rec.UpdatedAt) + "\n")

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(b.String())
}

// RunBrowse runs the browse TUI and returns the selected record, or
// nil when the user quit without selecting.
func RunBrowse(idx *catalog.Index, initialQuery string) (*catalog.Record, error) {
	model := NewBrowseModel(idx)
	if initialQuery != "" {
		model.SearchInput.SetValue(initialQuery)
		model.SearchInput.CursorEnd()
		model.refresh()
	}

	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("browse TUI failed: %w", err)
	}

	final, ok := finalModel.(BrowseModel)
	if !ok || !final.Confirmed {
		return nil, nil
	}

	return final.Selected, nil
}
