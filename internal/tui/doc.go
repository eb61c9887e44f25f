// Package tui provides terminal user interface components for vnxctl.
//
// This package uses the Bubble Tea framework to create interactive terminal
// interfaces, primarily the storage group picker.
//
// # Storage Group Picker
//
// The picker lists storage groups with their HLU usage and allows selection:
//
//	result, err := tui.RunPicker(states, limits)
//	switch result.Action {
//	case tui.ActionShow:
//	    // Print result.Group
//	case tui.ActionRemove:
//	    // Destroy result.Group
//	case tui.ActionQuit:
//	    // Exit
//	}
//
// # Picker Features
//
//   - Keyboard navigation (j/k or arrows) and filtering (/)
//   - Quick actions: Enter (show), d (remove), q (quit)
//   - Color-coded HLU usage: green, yellow above 80%, red when full
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
