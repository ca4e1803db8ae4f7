package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stepviz/internal/adapters/tui/styles"
)

// FormKeyMap defines key bindings shared by every form
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// FormKeys are the default form key bindings
var FormKeys = FormKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
}

// FormField is one labelled text input
type FormField struct {
	Label string
	input textinput.Model
}

// Field creates a form field; hint is shown as the placeholder
func Field(label, hint string, width int) FormField {
	in := textinput.New()
	in.Placeholder = hint
	in.CharLimit = width
	return FormField{Label: label, input: in}
}

// Form is a vertical list of fields with one focused at a time
type Form struct {
	fields  []FormField
	focused int
	Keys    FormKeyMap
}

// NewForm focuses the first field
func NewForm(fields ...FormField) *Form {
	f := &Form{fields: fields, Keys: FormKeys}
	f.focus(0)
	return f
}

func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the index of the focused field
func (f *Form) Focused() int {
	return f.focused
}

func (f *Form) focus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focused].input.Blur()
	f.focused = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focused].input.Focus()
}

// Update moves focus on tab/shift+tab and forwards everything else to the
// focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Next):
			f.focus(f.focused + 1)
			return nil
		case key.Matches(msg, f.Keys.Prev):
			f.focus(f.focused - 1)
			return nil
		}
	}
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focused].input, cmd = f.fields[f.focused].input.Update(msg)
	return cmd
}

// Text returns the trimmed value of field i
func (f *Form) Text(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// Int parses field i; an empty field yields fallback
func (f *Form) Int(i, fallback int) (int, error) {
	raw := f.Text(i)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", strings.ToLower(f.fields[i].Label), raw)
	}
	return n, nil
}

// List splits field i on commas and whitespace
func (f *Form) List(i int) []string {
	return strings.FieldsFunc(f.Text(i), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Clear empties every field and focuses the first
func (f *Form) Clear() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.focus(0)
}

// View renders the fields and the key help line
func (f *Form) View(submit string) string {
	var b strings.Builder
	for i, field := range f.fields {
		b.WriteString(styles.InputLabel.Render(field.Label))
		b.WriteString("\n")
		style := styles.InputField
		if i == f.focused {
			style = styles.InputFocused
		}
		b.WriteString(style.Render(field.input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	help := []string{
		styles.HelpKey.Render("tab") + " " + styles.HelpDesc.Render("next"),
		styles.HelpKey.Render("enter") + " " + styles.HelpDesc.Render(submit),
		styles.HelpKey.Render("esc") + " " + styles.HelpDesc.Render("cancel"),
	}
	b.WriteString(strings.Join(help, "  "))
	return b.String()
}
