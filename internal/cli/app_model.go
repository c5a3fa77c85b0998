package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appKeys are the bindings the root model handles itself. Everything else
// goes to the command bar or the active view.
type appKeys struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Command   key.Binding
	Back      key.Binding
}

var globalKeys = appKeys{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

// outputKeys scroll command output. Letter keys are left out so that they
// dismiss the output and still reach the view.
var outputKeys = viewport.KeyMap{
	PageDown:     key.NewBinding(key.WithKeys("pgdown")),
	PageUp:       key.NewBinding(key.WithKeys("pgup")),
	HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
	HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	Up:           key.NewBinding(key.WithKeys("up")),
	Down:         key.NewBinding(key.WithKeys("down")),
}

var (
	outputTopKey    = key.NewBinding(key.WithKeys("home"))
	outputBottomKey = key.NewBinding(key.WithKeys("end"))
)

// appModel is the root bubbletea model: a stack of views with the settings
// view at the bottom, a command bar, a status line and an output pane.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	quitting  bool

	// status is a one-line result shown instead of the key hints. The next
	// key outside the command bar clears it.
	status string

	// lastOutput replaces the active view (help text) until dismissed.
	lastOutput   string
	outputVP     viewport.Model
	outputActive bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}

	vp := viewport.New(0, 0)
	vp.KeyMap = outputKeys
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return appModel{
		state:     state,
		cmdBar:    newCommandBar(state),
		outputVP:  vp,
		viewStack: []View{newSettingsView(state)},
	}
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// updateActive forwards msg to the top view and stores the result.
func (m *appModel) updateActive(msg tea.Msg) tea.Cmd {
	v := m.activeView()
	if v == nil {
		return nil
	}
	updated, cmd := v.Update(msg)
	m.viewStack[len(m.viewStack)-1] = updated.(View)
	return cmd
}

// broadcast forwards msg to every view on the stack, bottom first.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.viewStack))
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// pop drops the top view. The home view stays.
func (m *appModel) pop() {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

func (m *appModel) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width, m.state.Height = msg.Width, msg.Height
		m.cmdBar.SetWidth(msg.Width)
		m.sizeOutput()
		return m, m.updateActive(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		return m, nil

	case pushViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case refreshViewMsg, selectionChangedMsg:
		return m, m.broadcast(msg)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		m.outputActive = true
		m.outputVP.SetContent(msg.output)
		m.sizeOutput()
		m.outputVP.GotoTop()
		return m, nil

	case statusMsg:
		m.status = msg.text
		return m, nil

	case wizardCompleteMsg:
		m.pop()
		m.clearOutput()
		return m, tea.Batch(msg.nextCmd, refreshCmd())

	case clearScreenMsg:
		m.clearOutput()
		m.status = ""
		m.state.SearchQuery = ""
		return m, refreshCmd()

	case quitMsg:
		return m, m.quit()
	}

	// Cursor blinks and form internals.
	if m.cmdBar.Focused() {
		return m, m.cmdBar.UpdateNonKey(msg)
	}
	return m, m.updateActive(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, globalKeys.ForceQuit) {
		return m, m.quit()
	}

	if m.cmdBar.Focused() {
		// The status line survives typing and esc so the last result
		// stays readable; a new command replaces it.
		if msg.Type == tea.KeyEnter {
			m.clearOutput()
			m.status = ""
		}
		return m, m.cmdBar.Update(msg)
	}

	m.status = ""

	if m.outputActive {
		switch {
		case key.Matches(msg, outputTopKey):
			m.outputVP.GotoTop()
			return m, nil
		case key.Matches(msg, outputBottomKey):
			m.outputVP.GotoBottom()
			return m, nil
		}
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
	}

	// Forms and the search box take every key, q and : included.
	if viewCapturesInput(m.activeView()) {
		return m, m.updateActive(msg)
	}

	switch {
	case key.Matches(msg, globalKeys.Command):
		m.cmdBar.Focus()
		return m, nil
	case key.Matches(msg, globalKeys.Quit):
		return m, m.quit()
	case key.Matches(msg, globalKeys.Back):
		m.pop()
		m.clearOutput()
		return m, nil
	}
	return m, m.updateActive(msg)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	content := ""
	switch {
	case m.outputActive && m.state.Height > 0:
		content = m.outputVP.View()
	case m.lastOutput != "":
		content = m.lastOutput
	case m.activeView() != nil:
		content = m.activeView().View()
	}

	out := strings.Join([]string{
		m.renderHeader(),
		content,
		m.renderStatusBar(),
		m.cmdBar.View(),
	}, "\n")

	// Fill the screen so the alt-screen renderer leaves no stale lines.
	if lines := lipgloss.Height(out); m.state.Height > lines {
		out += strings.Repeat("\n", m.state.Height-lines)
	}
	return out
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) rule() string {
	return formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
}

// renderHeader shows the app name, the view breadcrumb and, for an
// employee, whether they override or inherit.
func (m *appModel) renderHeader() string {
	var b strings.Builder
	b.WriteString(formatter.StylePurple.Render("logisales"))

	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		b.WriteString(" " + formatter.Dim("› "+strings.Join(crumbs, " › ")))
	}

	if e, ok := m.state.App.Settings.SelectedEmployee(); ok {
		tag := formatter.Dim("inherits global")
		if e.HasOverride() {
			tag = formatter.StyleHeader.Render("● override")
		}
		fmt.Fprintf(&b, "  %s%s%s %s", formatter.Dim("["), formatter.StyleGreen.Render(e.ID), formatter.Dim("]"), tag)
	}

	return b.String() + "\n" + m.rule()
}

// renderStatusBar shows, in order of preference: the status line, scroll
// hints for long output, or the active view's key hints.
func (m *appModel) renderStatusBar() string {
	var hints []string
	hint := func(k key.Binding) {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}

	switch {
	case m.status != "":
		hints = append(hints, m.status)
	case m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height:
		hints = append(hints, scrollIndicator(m.outputVP), formatter.Dim("↑↓ pgup/pgdn: scroll"), formatter.Dim("esc: dismiss"))
	case m.outputActive:
		// Short output needs no hints.
	default:
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hint(b)
			}
		}
		if !m.cmdBar.Focused() {
			if len(m.viewStack) > 1 {
				hint(globalKeys.Back)
			}
			hint(globalKeys.Command)
		}
	}

	return m.rule() + "\n" + strings.Join(hints, "  ")
}

func (m *appModel) sizeOutput() {
	if m.outputActive {
		m.outputVP.Width = m.state.Width
		m.outputVP.Height = m.state.ContentHeight()
	}
}

func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// isOutputScrollKey reports whether msg scrolls the output pane instead of
// dismissing it.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	k := outputKeys
	return key.Matches(msg, k.Up, k.Down, k.PageUp, k.PageDown, k.HalfPageUp, k.HalfPageDown, outputTopKey, outputBottomKey)
}

func scrollIndicator(vp viewport.Model) string {
	switch {
	case vp.AtTop():
		return formatter.Dim("[TOP]")
	case vp.AtBottom():
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// inputCapturer is implemented by views that take text input some of the time.
type inputCapturer interface {
	capturesInput() bool
}

// viewCapturesInput reports whether v should receive every key, bypassing
// q, : and esc.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	c, ok := v.(inputCapturer)
	return ok && c.capturesInput()
}
