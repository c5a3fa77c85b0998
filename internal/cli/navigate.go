package cli

import tea "github.com/charmbracelet/bubbletea"

// Messages views send to the appModel to change the stack or show output.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// cmdOutputMsg carries command output shown in place of the active view
// until the next key press.
type cmdOutputMsg struct {
	output string
}

// statusMsg is a one-line notice shown in the status bar. It does not hide
// the active view.
type statusMsg struct {
	text string
}

// refreshViewMsg asks every view on the stack to re-read service state.
type refreshViewMsg struct{}

// selectionChangedMsg is broadcast after the selection moves so the home
// view can move its cursor to match.
type selectionChangedMsg struct{}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel pops the wizard view, then runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// clearScreenMsg drops the output pane, the status line and the search filter.
type clearScreenMsg struct{}

// quitMsg signals the app to quit.
type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func refreshCmd() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// statusCmd returns a tea.Cmd that shows text in the status bar.
func statusCmd(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	return func() tea.Msg { return statusMsg{text: text} }
}

// wizardCompleteOutput pops the wizard and shows text in the status bar.
func wizardCompleteOutput(text string) wizardCompleteMsg {
	return wizardCompleteMsg{nextCmd: statusCmd(text)}
}
