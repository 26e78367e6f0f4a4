package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/spores/internal/shared"
)

const maskedDefault = "(unchanged)"

// Field is one question of a [Form].
type Field struct {
	Label    string
	Default  string
	Secret   bool
	Required bool
}

// Form collects a value for each [Field].
type Form struct {
	title     string
	fields    []Field
	inputs    []textinput.Model
	index     int
	submitted bool
	aborted   bool
	problem   string
	help      help.Model
	keys      keyMap
}

// NewForm builds a form with the first field focused.
func NewForm(title string, fields []Field) *Form {
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 256
		in.Placeholder = field.Default
		if field.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
			if field.Default != "" {
				in.Placeholder = maskedDefault
			}
		}
		inputs[i] = in
	}

	f := &Form{title: title, fields: fields, inputs: inputs, help: help.New(), keys: newKeyMap()}
	f.focus(0)
	return f
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses; everything else goes to the focused input.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.keys.quit):
			f.aborted = true
			return f, tea.Quit
		case key.Matches(msg, f.keys.submit):
			if f.index == len(f.inputs)-1 {
				if i, ok := f.missing(); ok {
					f.problem = f.fields[i].Label + " is required"
					return f, f.focus(i)
				}
				f.problem = ""
				f.submitted = true
				return f, tea.Quit
			}
			return f, f.focus(f.index + 1)
		case key.Matches(msg, f.keys.next):
			return f, f.focus(f.index + 1)
		case key.Matches(msg, f.keys.prev):
			return f, f.focus(f.index - 1)
		}
	}

	if len(f.inputs) == 0 {
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return f, cmd
}

func (f *Form) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n")

	for i, field := range f.fields {
		label := styles.blurred.Render(field.Label)
		if i == f.index {
			label = styles.focused.Render(field.Label)
		}
		fmt.Fprintf(&b, "%s\n%s\n\n", label, f.inputs[i].View())
	}

	if f.problem != "" {
		b.WriteString(styles.err.Render(f.problem))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.help.Render(f.help.ShortHelpView(f.keys.ShortHelp())))
	b.WriteString("\n")
	return b.String()
}

// focus moves the cursor to field i, clamped to the field range.
func (f *Form) focus(i int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	i = max(0, min(i, len(f.inputs)-1))

	f.inputs[f.index].Blur()
	f.index = i
	return f.inputs[i].Focus()
}

// Values returns the entered values, falling back to each field's default when left empty.
func (f *Form) Values() []string {
	values := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		values[i] = strings.TrimSpace(in.Value())
		if values[i] == "" {
			values[i] = f.fields[i].Default
		}
	}
	return values
}

// missing returns the first required field that has neither input nor default.
func (f *Form) missing() (int, bool) {
	for i, value := range f.Values() {
		if f.fields[i].Required && value == "" {
			return i, true
		}
	}
	return 0, false
}

func (f *Form) Submitted() bool { return f.submitted }
func (f *Form) Aborted() bool   { return f.aborted }

// RunForm runs the form as a full terminal program and returns its values.
func RunForm(ctx context.Context, in io.Reader, out io.Writer, title string, fields []Field) ([]string, error) {
	form := NewForm(title, fields)
	program := tea.NewProgram(form, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))

	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("configure form failed: %w", err)
	}
	if !form.Submitted() {
		return nil, fmt.Errorf("%w: configuration cancelled", shared.ErrAborted)
	}
	return form.Values(), nil
}
