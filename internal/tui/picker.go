// Package tui provides terminal user interface components for vnxctl
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vnx-tools/vnxctl/internal/storagegroup"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionShow
	ActionRemove
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Group  *storagegroup.State
}

// groupItem implements list.Item for storage group display
type groupItem struct {
	state *storagegroup.State
	max   int
}

func (i groupItem) Title() string {
	return i.state.Name
}

func (i groupItem) used() int {
	return len(i.state.Mappings)
}

func (i groupItem) Description() string {
	hosts := i.state.Hosts()
	hostList := "no hosts"
	if len(hosts) > 0 {
		hostList = truncate(strings.Join(hosts, ","), 30)
	}

	return fmt.Sprintf("%s %d/%d HLUs | %d HBA ports | %s",
		usageStyle(i.used(), i.max).Render(usageIcon(i.used(), i.max)),
		i.used(), i.max,
		len(i.state.HBAPorts),
		hostList,
	)
}

func (i groupItem) FilterValue() string {
	return i.state.Name
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func usageIcon(used, max int) string {
	switch {
	case used >= max:
		return "●"
	case used*5 > max*4:
		return "◐"
	}
	return "○"
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	fullStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func usageStyle(used, max int) lipgloss.Style {
	switch {
	case used >= max:
		return fullStyle
	case used*5 > max*4:
		return warnStyle
	}
	return okStyle
}

// Model is the bubbletea model for the storage group picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new storage group picker
func NewPicker(groups []*storagegroup.State, limits *storagegroup.Limits) Model {
	items := make([]list.Item, len(groups))
	for i, g := range groups {
		items[i] = groupItem{state: g, max: limits.Max()}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 80, 20)
	l.Title = "VNX - Select Storage Group"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return Model{list: l}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(groupItem); ok {
				m.result = PickerResult{Action: ActionShow, Group: item.state}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(groupItem); ok {
				m.result = PickerResult{Action: ActionRemove, Group: item.state}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Show  [d] Remove  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive storage group picker
func RunPicker(groups []*storagegroup.State, limits *storagegroup.Limits) (PickerResult, error) {
	if len(groups) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(groups, limits)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists storage groups
func SimplePicker(groups []*storagegroup.State, limits *storagegroup.Limits) string {
	var sb strings.Builder

	sb.WriteString("VNX - Storage Groups\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(groups) == 0 {
		sb.WriteString("No storage groups found.\n")
		sb.WriteString("Create one with: vnxctl create <name>\n")
		return sb.String()
	}

	max := limits.Max()
	for i, g := range groups {
		used := len(g.Mappings)
		sb.WriteString(fmt.Sprintf("%d. %s %s (%d/%d HLUs)\n",
			i+1, usageIcon(used, max), g.Name, used, max))
		sb.WriteString(fmt.Sprintf("   UID: %s | Hosts: %s\n\n",
			g.UID, strings.Join(g.Hosts(), ",")))
	}

	return sb.String()
}
