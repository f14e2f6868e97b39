package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type inputModel struct {
	prompt    string
	input     textinput.Model
	cancelled bool
	done      bool
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return promptStyle.Render(m.prompt) + " " + m.input.View() + "\n"
}

// Input prompts for a line of free text.
func Input(prompt string) (string, error) {
	ti := textinput.New()
	ti.Placeholder = "title"
	ti.Focus()

	final, err := tea.NewProgram(inputModel{prompt: prompt, input: ti}).Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	result := final.(inputModel)
	if result.cancelled {
		return "", fmt.Errorf("input cancelled")
	}

	value := strings.TrimSpace(result.input.Value())
	if value == "" {
		return "", fmt.Errorf("no input provided")
	}
	return value, nil
}
