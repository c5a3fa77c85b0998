package cli

import (
	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

var formKeys = struct {
	Confirm key.Binding
	Cancel  key.Binding
}{
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// formView puts a single huh.Form on the view stack. onSubmit runs once,
// when the form completes, and its command rides along in the
// wizardCompleteMsg that pops the view.
type formView struct {
	form     *huh.Form
	title    string
	onSubmit func() tea.Cmd
	finished bool
}

func (v *formView) Init() tea.Cmd { return v.form.Init() }

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, formKeys.Cancel) {
		return v, v.cancel()
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateAborted:
		return v, v.cancel()
	case huh.StateCompleted:
		v.finished = true
		var next tea.Cmd
		if v.onSubmit != nil {
			next = v.onSubmit()
		}
		done := wizardCompleteMsg{nextCmd: tea.Batch(cmd, next)}
		return v, func() tea.Msg { return done }
	}
	return v, cmd
}

func (v *formView) cancel() tea.Cmd {
	v.finished = true
	return func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
}

func (v *formView) View() string { return "\n" + v.form.View() }

func (v *formView) ID() ViewID               { return ViewForm }
func (v *formView) Title() string            { return v.title }
func (v *formView) ShortHelp() []key.Binding { return []key.Binding{formKeys.Confirm, formKeys.Cancel} }

// openFormCmd pushes form as a new view. A nil form skips straight to onSubmit.
func openFormCmd(title string, form *huh.Form, onSubmit func() tea.Cmd) tea.Cmd {
	if form == nil {
		if onSubmit != nil {
			return onSubmit()
		}
		return nil
	}
	return pushView(&formView{form: form, title: title, onSubmit: onSubmit})
}
