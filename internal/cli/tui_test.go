package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func strategyModel() PickListModel {
	items := make([]pickItem, 0, 3)
	for _, s := range graphmap.Strategies() {
		items = append(items, pickItem{Name: string(s), Desc: strategyDescs[s]})
	}
	return NewPickListModel("Select Strategy", items)
}

func TestPickListNavigation(t *testing.T) {
	m := strategyModel()

	next, _ := m.Update(keyMsg("down"))
	m = next.(PickListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("j"))
	m = next.(PickListModel)
	next, _ = m.Update(keyMsg("j"))
	m = next.(PickListModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d, should clamp at last item", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(PickListModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after up, want 1", m.Cursor)
	}
}

func TestPickListSelect(t *testing.T) {
	m := strategyModel()

	next, _ := m.Update(keyMsg("down"))
	m = next.(PickListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(PickListModel)

	if m.Selected != "sector" {
		t.Errorf("Selected = %q, want sector", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestPickListQuitWithoutSelection(t *testing.T) {
	m := strategyModel()
	next, cmd := m.Update(keyMsg("esc"))
	m = next.(PickListModel)

	if m.Selected != "" {
		t.Errorf("Selected = %q, want empty after quit", m.Selected)
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestPickListView(t *testing.T) {
	view := strategyModel().View()
	for _, s := range graphmap.Strategies() {
		if !strings.Contains(view, string(s)) {
			t.Errorf("view missing strategy %q", s)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Error("view should mark the cursor row")
	}
}

func TestDescriptionsCoverAllOptions(t *testing.T) {
	for _, s := range graphmap.Strategies() {
		if strategyDescs[s] == "" {
			t.Errorf("missing description for strategy %q", s)
		}
	}
	for _, c := range mindmap.Complexities() {
		if complexityDescs[c] == "" {
			t.Errorf("missing description for complexity %q", c)
		}
	}
}
