package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(f *Form, s string) {
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(f *Form, k tea.KeyType) tea.Cmd {
	_, cmd := f.Update(tea.KeyMsg{Type: k})
	return cmd
}

func configureFields() []Field {
	return []Field{
		{Label: "Client ID", Default: "old_id"},
		{Label: "Client secret", Default: "old_secret", Secret: true},
		{Label: "Redirect URI", Default: "http://127.0.0.1:8888/callback"},
	}
}

func TestForm(t *testing.T) {
	t.Run("enter advances and submits on last field", func(t *testing.T) {
		f := NewForm("Spores configuration", configureFields())

		typeText(f, "new_id")
		press(f, tea.KeyEnter)
		if f.index != 1 {
			t.Fatalf("expected focus on field 1, got %d", f.index)
		}

		typeText(f, "new_secret")
		press(f, tea.KeyEnter)
		if f.Submitted() {
			t.Fatal("form should not submit before the last field")
		}

		if cmd := press(f, tea.KeyEnter); cmd == nil {
			t.Error("expected quit command on submit")
		}
		if !f.Submitted() || f.Aborted() {
			t.Fatalf("expected submitted form, submitted=%v aborted=%v", f.Submitted(), f.Aborted())
		}

		values := f.Values()
		want := []string{"new_id", "new_secret", "http://127.0.0.1:8888/callback"}
		for i := range want {
			if values[i] != want[i] {
				t.Errorf("value %d: expected %q, got %q", i, want[i], values[i])
			}
		}
	})

	t.Run("empty fields keep defaults", func(t *testing.T) {
		f := NewForm("t", configureFields())
		press(f, tea.KeyEnter)
		press(f, tea.KeyEnter)
		press(f, tea.KeyEnter)

		values := f.Values()
		if values[0] != "old_id" || values[1] != "old_secret" {
			t.Errorf("expected defaults, got %v", values)
		}
	})

	t.Run("escape aborts", func(t *testing.T) {
		f := NewForm("t", configureFields())
		typeText(f, "abc")
		press(f, tea.KeyEsc)

		if !f.Aborted() || f.Submitted() {
			t.Error("expected aborted form")
		}
	})

	t.Run("ctrl+c aborts", func(t *testing.T) {
		f := NewForm("t", configureFields())
		press(f, tea.KeyCtrlC)

		if !f.Aborted() {
			t.Error("expected aborted form")
		}
	})

	t.Run("tab and shift+tab move focus within bounds", func(t *testing.T) {
		f := NewForm("t", configureFields())

		press(f, tea.KeyShiftTab)
		if f.index != 0 {
			t.Errorf("expected focus to stay on 0, got %d", f.index)
		}

		press(f, tea.KeyTab)
		press(f, tea.KeyTab)
		press(f, tea.KeyTab)
		if f.index != 2 {
			t.Errorf("expected focus clamped to 2, got %d", f.index)
		}
		if f.Submitted() {
			t.Error("tab should not submit")
		}
	})

	t.Run("View masks secrets", func(t *testing.T) {
		f := NewForm("Spores configuration", configureFields())
		press(f, tea.KeyEnter)
		typeText(f, "supersecret")

		view := f.View()
		if strings.Contains(view, "supersecret") || strings.Contains(view, "old_secret") {
			t.Errorf("secret leaked into view:\n%s", view)
		}
		if !strings.Contains(view, "Client ID") || !strings.Contains(view, "Redirect URI") {
			t.Errorf("expected labels in view:\n%s", view)
		}
	})

	t.Run("required fields block submit", func(t *testing.T) {
		tests := []struct {
			name      string
			fill      func(f *Form)
			wantFocus int
			wantMsg   string
		}{
			{
				name:      "both empty",
				fill:      func(f *Form) {},
				wantFocus: 0,
				wantMsg:   "Client ID is required",
			},
			{
				name: "secret empty",
				fill: func(f *Form) {
					typeText(f, "id")
				},
				wantFocus: 1,
				wantMsg:   "Client secret is required",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := NewForm("t", []Field{
					{Label: "Client ID", Required: true},
					{Label: "Client secret", Secret: true, Required: true},
					{Label: "Redirect URI", Default: "http://127.0.0.1:8888/callback"},
				})
				tt.fill(f)
				press(f, tea.KeyTab)
				press(f, tea.KeyTab)
				press(f, tea.KeyEnter)

				if f.Submitted() {
					t.Fatal("form submitted with a required field empty")
				}
				if f.index != tt.wantFocus {
					t.Errorf("expected focus on field %d, got %d", tt.wantFocus, f.index)
				}
				if view := f.View(); !strings.Contains(view, tt.wantMsg) {
					t.Errorf("expected %q in view:\n%s", tt.wantMsg, view)
				}
			})
		}
	})

	t.Run("required field satisfied by default", func(t *testing.T) {
		f := NewForm("t", []Field{
			{Label: "Client ID", Default: "old_id", Required: true},
			{Label: "Client secret", Default: "old_secret", Secret: true, Required: true},
		})
		press(f, tea.KeyEnter)
		press(f, tea.KeyEnter)

		if !f.Submitted() {
			t.Fatal("expected defaults to satisfy required fields")
		}
		if strings.Contains(f.View(), "is required") {
			t.Errorf("unexpected error in view:\n%s", f.View())
		}
	})
}
