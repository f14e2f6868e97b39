// Package ui implements the interactive terminal surfaces: a list picker,
// a free-text prompt, and the styled offer listing.
package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type pickerModel struct {
	prompt    string
	items     []string
	cursor    int
	selected  int
	cancelled bool
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	s := promptStyle.Render(m.prompt) + "\n"
	for i, item := range m.items {
		if i == m.cursor {
			s += cursorStyle.Render("> ") + selectedStyle.Render(item) + "\n"
		} else {
			s += "  " + item + "\n"
		}
	}
	s += dimStyle.Render("enter: select, q: cancel") + "\n"
	return s
}

// Select presents items and returns the chosen index.
func Select(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	model := pickerModel{prompt: prompt, items: items, selected: -1}
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return -1, fmt.Errorf("running picker: %w", err)
	}

	result := final.(pickerModel)
	if result.cancelled || result.selected < 0 {
		return -1, fmt.Errorf("selection cancelled")
	}
	return result.selected, nil
}
