package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{}
}

func step(t *testing.T, m tea.Model, msg tea.Msg) ColumnPickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	picker, ok := next.(ColumnPickerModel)
	if !ok {
		t.Fatalf("Update returned %T, want ColumnPickerModel", next)
	}
	return picker
}

func TestColumnPickerSelection(t *testing.T) {
	m := NewColumnPickerModel([]string{"source", "target", "amount"})

	// Left: pick "source"
	m = step(t, m, key("enter"))
	if m.Stage != stageRight {
		t.Fatalf("stage = %v, want right", m.Stage)
	}

	// Right: move down once, pick "target"
	m = step(t, m, key("down"))
	m = step(t, m, key("enter"))
	if m.Stage != stageWeight {
		t.Fatalf("stage = %v, want weight", m.Stage)
	}

	// Weight: move past "(none)" twice down to "amount"... entry 0 is the
	// no-weight option, so "amount" sits at index 3.
	for i := 0; i < 3; i++ {
		m = step(t, m, key("down"))
	}
	m = step(t, m, key("enter"))

	if m.Selected == nil {
		t.Fatal("selection not recorded")
	}
	if m.Selected.Left != "source" || m.Selected.Right != "target" || m.Selected.Weight != "amount" {
		t.Errorf("selection = %+v", m.Selected)
	}
}

func TestColumnPickerNoWeight(t *testing.T) {
	m := NewColumnPickerModel([]string{"a", "b"})

	m = step(t, m, key("enter")) // left: a
	m = step(t, m, key("enter")) // right: a (valid pick, picker does not dedupe)
	m = step(t, m, key("enter")) // weight: (none)

	if m.Selected == nil {
		t.Fatal("selection not recorded")
	}
	if m.Selected.Weight != "" {
		t.Errorf("weight = %q, want empty for the no-weight option", m.Selected.Weight)
	}
}

func TestColumnPickerAbort(t *testing.T) {
	m := NewColumnPickerModel([]string{"a", "b"})
	m = step(t, m, key("esc"))
	if !m.Aborted {
		t.Error("esc should abort the picker")
	}
}

func TestColumnPickerView(t *testing.T) {
	m := NewColumnPickerModel([]string{"source", "target"})
	view := m.View()
	if !strings.Contains(view, "source") || !strings.Contains(view, "target") {
		t.Error("view should list the columns")
	}
	if !strings.Contains(view, "Select left column") {
		t.Error("view should show the current stage")
	}
}
