package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

func testGroup() *storagegroup.State {
	return &storagegroup.State{
		Name: "esx-cluster",
		UID:  "E6:4E:90:03",
		Mappings: []storagegroup.Mapping{
			{HLU: 1, ALU: 10},
			{HLU: 2, ALU: 11},
		},
		HBAPorts: []storagegroup.HBAPort{
			{UID: "iqn.a", SP: storagegroup.SPA, HostName: "esx01"},
			{UID: "iqn.a", SP: storagegroup.SPB, HostName: "esx01"},
			{UID: "iqn.b", SP: storagegroup.SPA, HostName: "esx02"},
		},
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"esx01,esx02,esx03,esx04", 12, "esx01,esx..."},
		{"", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			got := truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestGroupItemMethods(t *testing.T) {
	item := groupItem{state: testGroup(), max: 255}

	t.Run("Title", func(t *testing.T) {
		if got := item.Title(); got != "esx-cluster" {
			t.Errorf("Title() = %q, want %q", got, "esx-cluster")
		}
	})

	t.Run("FilterValue", func(t *testing.T) {
		if got := item.FilterValue(); got != "esx-cluster" {
			t.Errorf("FilterValue() = %q, want %q", got, "esx-cluster")
		}
	})

	t.Run("Description", func(t *testing.T) {
		desc := item.Description()
		if !strings.Contains(desc, "2/255 HLUs") {
			t.Errorf("Description should contain HLU usage, got %q", desc)
		}
		if !strings.Contains(desc, "3 HBA ports") {
			t.Errorf("Description should contain HBA count, got %q", desc)
		}
		if !strings.Contains(desc, "esx01,esx02") {
			t.Errorf("Description should list hosts once each, got %q", desc)
		}
	})

	t.Run("Description sorts hosts", func(t *testing.T) {
		st := testGroup()
		st.HBAPorts = []storagegroup.HBAPort{
			{UID: "iqn.b", SP: storagegroup.SPA, HostName: "esx02"},
			{UID: "iqn.a", SP: storagegroup.SPA, HostName: "esx01"},
		}
		item := groupItem{state: st, max: 255}
		if desc := item.Description(); !strings.Contains(desc, "esx01,esx02") {
			t.Errorf("Description should list hosts like Group.Hosts, got %q", desc)
		}
	})

	t.Run("Description without hosts", func(t *testing.T) {
		item := groupItem{state: &storagegroup.State{Name: "empty"}, max: 255}
		if !strings.Contains(item.Description(), "no hosts") {
			t.Error("Description should say no hosts")
		}
	})
}

func TestUsageIcon(t *testing.T) {
	tests := []struct {
		used, max int
		icon      string
	}{
		{0, 10, "○"},
		{8, 10, "○"},
		{9, 10, "◐"},
		{10, 10, "●"},
		{0, 0, "●"},
	}

	for _, tt := range tests {
		if got := usageIcon(tt.used, tt.max); got != tt.icon {
			t.Errorf("usageIcon(%d, %d) = %q, want %q", tt.used, tt.max, got, tt.icon)
		}
	}
}

func TestModelKeyHandling(t *testing.T) {
	limits := storagegroup.NewLimits(255)

	t.Run("quit with q", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
		if !model.quitting {
			t.Error("Model should be quitting")
		}
		if cmd == nil {
			t.Error("Should return tea.Quit command")
		}
	})

	t.Run("quit with esc", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		model := newModel.(Model)

		if model.result.Action != ActionQuit {
			t.Errorf("Action = %v, want ActionQuit", model.result.Action)
		}
	})

	t.Run("show with enter", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		model := newModel.(Model)

		if model.result.Action != ActionShow {
			t.Errorf("Action = %v, want ActionShow", model.result.Action)
		}
		if model.result.Group == nil || model.result.Group.Name != "esx-cluster" {
			t.Errorf("Group = %+v, want esx-cluster", model.result.Group)
		}
	})

	t.Run("remove with d", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
		model := newModel.(Model)

		if model.result.Action != ActionRemove {
			t.Errorf("Action = %v, want ActionRemove", model.result.Action)
		}
	})

	t.Run("window size update", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		newModel, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
		model := newModel.(Model)

		if model.width != 100 {
			t.Errorf("Width = %d, want 100", model.width)
		}
		if model.height != 50 {
			t.Errorf("Height = %d, want 50", model.height)
		}
		if cmd != nil {
			t.Error("Window size update should not return a command")
		}
	})
}

func TestModelInit(t *testing.T) {
	m := Model{}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should return nil")
	}
}

func TestModelView(t *testing.T) {
	limits := storagegroup.NewLimits(255)

	t.Run("normal view contains help", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		view := m.View()

		if !strings.Contains(view, "[enter] Show") {
			t.Error("View should contain show help")
		}
		if !strings.Contains(view, "[q] Quit") {
			t.Error("View should contain quit help")
		}
	})

	t.Run("quitting view is empty", func(t *testing.T) {
		m := NewPicker([]*storagegroup.State{testGroup()}, limits)
		m.quitting = true
		if view := m.View(); view != "" {
			t.Errorf("Quitting view should be empty, got %q", view)
		}
	})
}

func TestRunPickerEmpty(t *testing.T) {
	result, err := RunPicker(nil, storagegroup.NewLimits(255))
	if err != nil {
		t.Fatalf("RunPicker failed: %v", err)
	}
	if result.Action != ActionQuit {
		t.Errorf("Action = %v, want ActionQuit", result.Action)
	}
}

func TestSimplePicker(t *testing.T) {
	limits := storagegroup.NewLimits(255)

	out := SimplePicker([]*storagegroup.State{testGroup()}, limits)
	if !strings.Contains(out, "esx-cluster") || !strings.Contains(out, "2/255 HLUs") {
		t.Errorf("SimplePicker output missing group details:\n%s", out)
	}

	out = SimplePicker(nil, limits)
	if !strings.Contains(out, "No storage groups found") {
		t.Errorf("SimplePicker should report no groups:\n%s", out)
	}
}
