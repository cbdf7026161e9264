package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
	"github.com/lycosa9527/mindgraph/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PickListModel - Interactive option selection
// =============================================================================

// pickItem is one selectable entry in a pick list.
type pickItem struct {
	Name string
	Desc string
}

// PickListModel is the bubbletea model for selecting one item from a list.
type PickListModel struct {
	Title    string
	Items    []pickItem
	Cursor   int
	Selected string
}

// NewPickListModel creates a new pick list model.
func NewPickListModel(title string, items []pickItem) PickListModel {
	return PickListModel{
		Title: title,
		Items: items,
	}
}

func (m PickListModel) Init() tea.Cmd {
	return nil
}

func (m PickListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Items[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PickListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, item := range m.Items {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n",
			cursor, style.Render(item.Name), listDimStyle.Render(item.Desc)))
	}

	return b.String()
}

// =============================================================================
// Pickers
// =============================================================================

var strategyDescs = map[graphmap.Strategy]string{
	graphmap.StrategyLayered: "horizontal layers by topic distance (default)",
	graphmap.StrategySector:  "angular wedges around key concepts",
	graphmap.StrategyRadial:  "concentric rings with seeded jitter",
}

var complexityDescs = map[mindmap.Complexity]string{
	mindmap.ComplexitySimple:  "up to 4 branches, 4 children each",
	mindmap.ComplexityMedium:  "up to 8 branches, 6 children each (default)",
	mindmap.ComplexityComplex: "up to 12 branches, 8 children each",
	mindmap.ComplexityExtreme: "up to 16 branches, 10 children each",
}

// pickInteractive prompts for a strategy (concept maps) or complexity
// (mind maps) and stores the choice on opts. Quitting without a selection
// leaves the defaults untouched.
func pickInteractive(opts *pipeline.Options) error {
	var model PickListModel
	if opts.IsGraph() {
		items := make([]pickItem, 0, len(graphmap.Strategies()))
		for _, s := range graphmap.Strategies() {
			items = append(items, pickItem{Name: string(s), Desc: strategyDescs[s]})
		}
		model = NewPickListModel("Select Strategy", items)
	} else {
		items := make([]pickItem, 0, len(mindmap.Complexities()))
		for _, c := range mindmap.Complexities() {
			items = append(items, pickItem{Name: string(c), Desc: complexityDescs[c]})
		}
		model = NewPickListModel("Select Complexity", items)
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	picked, ok := final.(PickListModel)
	if !ok || picked.Selected == "" {
		return nil
	}
	if opts.IsGraph() {
		opts.Strategy = picked.Selected
	} else {
		opts.Complexity = picked.Selected
	}
	return nil
}
