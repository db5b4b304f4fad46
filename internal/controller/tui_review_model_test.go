package controller

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func sendKeys(t *testing.T, model reviewModel, keys ...string) reviewModel {
	t.Helper()

	for _, k := range keys {
		next, _ := model.Update(key(k))

		var ok bool

		model, ok = next.(reviewModel)
		if !ok {
			t.Fatalf("Update returned %T, want reviewModel", next)
		}
	}

	return model
}

func TestReviewModel_StartsAllConfirmed(t *testing.T) {
	model := newReviewModel(sampleBindings())

	for _, binding := range model.bindings {
		if !binding.UserConfirmed {
			t.Fatalf("binding %s should start confirmed", binding.VariableName)
		}
	}
}

func TestReviewModel_SpaceTogglesConfirmation(t *testing.T) {
	model := newReviewModel(sampleBindings())

	model = sendKeys(t, model, " ")
	if model.bindings[0].UserConfirmed {
		t.Fatalf("space should skip the selected binding")
	}

	model = sendKeys(t, model, " ")
	if !model.bindings[0].UserConfirmed {
		t.Fatalf("space should re-confirm the selected binding")
	}
}

func TestReviewModel_CursorMovesWithinBounds(t *testing.T) {
	model := newReviewModel(sampleBindings())

	model = sendKeys(t, model, "up")
	if model.cursor != 0 {
		t.Fatalf("cursor moved above first row: %d", model.cursor)
	}

	model = sendKeys(t, model, "down", "down", "down")
	if model.cursor != 1 {
		t.Fatalf("cursor moved past last row: %d", model.cursor)
	}
}

func TestReviewModel_EditRename(t *testing.T) {
	model := newReviewModel(sampleBindings())

	model = sendKeys(t, model, "e")
	if !model.editing {
		t.Fatalf("e should enter edit mode")
	}

	model.input.SetValue("companyName")

	model = sendKeys(t, model, "enter")
	if model.editing {
		t.Fatalf("enter with a valid name should leave edit mode")
	}

	if model.bindings[0].VariableName != "companyName" {
		t.Fatalf("VariableName = %q, want companyName", model.bindings[0].VariableName)
	}
}

func TestReviewModel_EditRejectsInvalidName(t *testing.T) {
	model := newReviewModel(sampleBindings())

	model = sendKeys(t, model, "e")
	model.input.SetValue("9lives")

	model = sendKeys(t, model, "enter")
	if !model.editing {
		t.Fatalf("invalid name should keep edit mode open")
	}

	if model.editErr == "" {
		t.Fatalf("invalid name should set an edit error")
	}
}

func TestReviewModel_EditRejectsDuplicateName(t *testing.T) {
	model := newReviewModel(sampleBindings())

	model = sendKeys(t, model, "e")
	model.input.SetValue("amount") // already used by the second binding

	model = sendKeys(t, model, "enter")
	if !model.editing || model.editErr == "" {
		t.Fatalf("duplicate name should keep edit mode open with an error")
	}
}

func TestReviewModel_QuitAndAbort(t *testing.T) {
	model := newReviewModel(sampleBindings())

	next, cmd := model.Update(key("enter"))
	if cmd == nil {
		t.Fatalf("enter should quit the program")
	}

	if next.(reviewModel).aborted {
		t.Fatalf("enter should commit, not abort")
	}

	model = newReviewModel(sampleBindings())

	next, cmd = model.Update(key("q"))
	if cmd == nil || !next.(reviewModel).aborted {
		t.Fatalf("q should abort the review")
	}
}

func TestReviewModel_ViewListsBindings(t *testing.T) {
	model := newReviewModel(sampleBindings())

	view := model.View()

	for _, want := range []string{"customerName", "amount", "[x]", "2 use(s)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q\n%s", want, view)
		}
	}
}
