package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/d365fo-tools/recweaver/internal/domain"
	m "github.com/d365fo-tools/recweaver/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)

	confirmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// reviewModel handles the interactive binding review: toggle confirm/skip,
// edit variable names with edit-time validation, commit or abort.
type reviewModel struct {
	bindings []m.VariableBinding
	cursor   int

	editing bool
	input   textinput.Model
	editErr string

	aborted bool
}

func newReviewModel(bindings []m.VariableBinding) reviewModel {
	working := make([]m.VariableBinding, len(bindings))
	copy(working, bindings)

	// Everything starts confirmed; review is for opting out and renaming.
	for i := range working {
		working[i].UserConfirmed = true
	}

	input := textinput.New()
	input.CharLimit = 64
	input.Width = 40

	return reviewModel{
		bindings: working,
		input:    input,
	}
}

func (r reviewModel) Init() tea.Cmd {
	return nil
}

func (r reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if r.editing {
		return r.updateEditing(keyMsg)
	}

	switch keyMsg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(r.bindings)-1 {
			r.cursor++
		}
	case " ":
		r.bindings[r.cursor].UserConfirmed = !r.bindings[r.cursor].UserConfirmed
	case "e":
		r.editing = true
		r.editErr = ""
		r.input.SetValue(r.bindings[r.cursor].VariableName)
		r.input.Focus()
	case "enter":
		return r, tea.Quit
	case "q", "esc", "ctrl+c":
		r.aborted = true
		return r, tea.Quit
	}

	return r, nil
}

func (r reviewModel) updateEditing(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "enter":
		name := r.input.Value()
		if err := domain.ValidateIdentifier(name); err != nil {
			r.editErr = err.Error()
			return r, nil
		}

		if r.nameTaken(name) {
			r.editErr = fmt.Sprintf("%q is already used by another variable", name)
			return r, nil
		}

		r.bindings[r.cursor].VariableName = name
		r.editing = false
		r.input.Blur()

		return r, nil
	case "esc":
		r.editing = false
		r.editErr = ""
		r.input.Blur()

		return r, nil
	}

	var cmd tea.Cmd
	r.input, cmd = r.input.Update(keyMsg)

	return r, cmd
}

// nameTaken reports whether another binding already uses name.
func (r reviewModel) nameTaken(name string) bool {
	for i, binding := range r.bindings {
		if i != r.cursor && binding.VariableName == name {
			return true
		}
	}

	return false
}

func (r reviewModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Review extracted variables"))
	b.WriteString("\n\n")

	for i, binding := range r.bindings {
		marker := "[ ]"
		style := skippedStyle

		if binding.UserConfirmed {
			marker = "[x]"
			style = confirmedStyle
		}

		line := fmt.Sprintf("%s %-24s %-32q %d use(s)",
			marker, binding.VariableName, binding.CanonicalValue, len(binding.Occurrences))

		if i == r.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(style.Render(line))
		}

		b.WriteString("\n")
	}

	if r.editing {
		b.WriteString("\nNew name: " + r.input.View() + "\n")

		if r.editErr != "" {
			b.WriteString(errorStyle.Render(r.editErr) + "\n")
		}
	} else {
		b.WriteString("\n" + helpStyle.Render("space: confirm/skip  e: rename  enter: apply  q: cancel") + "\n")
	}

	return b.String()
}
