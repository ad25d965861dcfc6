package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type field struct {
	label string
	input textinput.Model
}

// formModel is a vertical list of single-line inputs. Enter moves to the
// next input and submits on the last one.
type formModel struct {
	action action
	title  string
	fields []field
	focus  int
}

func newForm(a action, title string, labels, placeholders []string) formModel {
	f := formModel{action: a, title: title}
	for i, l := range labels {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 0
		if i < len(placeholders) {
			ti.Placeholder = placeholders[i]
		}
		f.fields = append(f.fields, field{label: l, input: ti})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f formModel) values() []string {
	out := make([]string, len(f.fields))
	for i, fl := range f.fields {
		out[i] = fl.input.Value()
	}
	return out
}

func (f *formModel) setFocus(i int) tea.Cmd {
	if i < 0 || i >= len(f.fields) {
		return nil
	}
	f.fields[f.focus].input.Blur()
	f.focus = i
	return f.fields[i].input.Focus()
}

// Update returns submitted=true when enter is pressed on the last input.
func (f formModel) Update(msg tea.Msg) (formModel, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		var cmd tea.Cmd
		switch k.String() {
		case "enter":
			if f.focus == len(f.fields)-1 {
				return f, nil, true
			}
			cmd = f.setFocus(f.focus + 1)
			return f, cmd, false
		case "tab", "down":
			cmd = f.setFocus((f.focus + 1) % len(f.fields))
			return f, cmd, false
		case "shift+tab", "up":
			cmd = f.setFocus((f.focus + len(f.fields) - 1) % len(f.fields))
			return f, cmd, false
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, false
}

func (f formModel) View() string {
	var b strings.Builder
	b.WriteString(BannerStyle.Render(f.title) + "\n\n")
	for i, fl := range f.fields {
		label := LabelStyle.Render(fl.label)
		if i == f.focus {
			label = FocusedLabel.Render(fl.label)
		}
		b.WriteString(label + "\n" + fl.input.View() + "\n\n")
	}
	return BoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
