package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	Key         string
	Label       string
	Value       string
	Suggestions []string
}

// formScreen is a vertical stack of text inputs with tab focus cycling.
// onSubmit receives the field values keyed by formField.Key.
type formScreen struct {
	title    string
	fields   []formField
	inputs   []textinput.Model
	focus    int
	onSubmit func(values map[string]string) tea.Msg
}

func newFormScreen(title string, fields []formField, onSubmit func(values map[string]string) tea.Msg) *formScreen {
	inputs := make([]textinput.Model, 0, len(fields))
	for i, f := range fields {
		inp := textinput.New()
		inp.Prompt = f.Label + ": "
		inp.SetValue(f.Value)
		if len(f.Suggestions) > 0 {
			inp.ShowSuggestions = true
			inp.SetSuggestions(f.Suggestions)
		}
		if i == 0 {
			inp.Focus()
		}
		inputs = append(inputs, inp)
	}
	return &formScreen{title: title, fields: fields, inputs: inputs, onSubmit: onSubmit}
}

// Update handles one message. done reports whether the form is finished
// (submitted or cancelled).
func (s *formScreen) Update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, true
		case "tab", "shift+tab", "down", "up":
			dir := 1
			if msg.String() == "shift+tab" || msg.String() == "up" {
				dir = -1
			}
			s.inputs[s.focus].Blur()
			s.focus = (s.focus + dir + len(s.inputs)) % len(s.inputs)
			s.inputs[s.focus].Focus()
			return nil, false
		case "enter":
			vals := map[string]string{}
			for i, f := range s.fields {
				vals[f.Key] = strings.TrimSpace(s.inputs[i].Value())
			}
			if s.onSubmit != nil {
				return func() tea.Msg { return s.onSubmit(vals) }, true
			}
			return nil, true
		}
	}
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return cmd, false
}

func (s *formScreen) View() string {
	lines := []string{titleStyle.Render(s.title)}
	for _, in := range s.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines, "", "[enter] Save  [esc] Cancel  [tab] Next field")
	return strings.Join(lines, "\n")
}
