package cli

import (
	"strings"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 200
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist, err := loadHistory(state.App.HistoryPath)
	if err != nil {
		state.App.logger().Warn("loading command history", "path", state.App.HistoryPath, "err", err)
	}

	return commandBar{
		input:      ti,
		state:      state,
		history:    hist,
		historyIdx: len(hist),
	}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(c.promptPrefixPlain()) - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

// promptPrefix shows the current selection: "logisales (EMP002) ❯ ".
func (c *commandBar) promptPrefix() string {
	sel := c.state.App.Settings.Selection()
	if sel.IsGlobal() {
		return formatter.StylePurple.Render("logisales") + " " + formatter.Dim("❯") + " "
	}
	return formatter.StylePurple.Render("logisales") + " " +
		formatter.Dim("(") + formatter.StyleGreen.Render(sel.EmployeeID()) + formatter.Dim(")") +
		" " + formatter.Dim("❯") + " "
}

// promptPrefixPlain returns the unstyled prompt for width calculations.
func (c *commandBar) promptPrefixPlain() string {
	sel := c.state.App.Settings.Selection()
	if sel.IsGlobal() {
		return "logisales > "
	}
	return "logisales (" + sel.EmployeeID() + ") > "
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
	if err := appendHistory(c.state.App.HistoryPath, line); err != nil {
		c.state.App.logger().Warn("saving command history", "err", err)
	}
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	c.input.SetSuggestions(c.suggest(c.input.Value()))
}

// suggest returns whole-line completions for text. textinput matches
// suggestions against the full value, so each one repeats the typed prefix.
func (c *commandBar) suggest(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) == 1 && !trailingSpace {
		return filterSuggestions(commandNames(), parts[0])
	}

	// Complete the word being typed (or the next one after a space).
	done := parts
	prefix := ""
	if !trailingSpace {
		done, prefix = parts[:len(parts)-1], parts[len(parts)-1]
	}
	cmd := strings.ToLower(done[0])

	var pool []string
	switch {
	case len(done) == 1 && cmd == "select":
		pool = c.employeeIDs()
	case len(done) == 1:
		pool = argumentNames()[cmd]
	case len(done) == 3 && cmd == "tier" && strings.ToLower(done[1]) == "set":
		pool = tierFieldNames()
	case len(done) == 4 && cmd == "tier" && strings.ToLower(done[3]) == "type":
		pool = []string{"flat", "percentage"}
	}

	matches := filterSuggestions(pool, prefix)
	if len(matches) == 0 {
		return nil
	}
	head := strings.Join(done, " ") + " "
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = head + m
	}
	return out
}

func (c *commandBar) employeeIDs() []string {
	ids := []string{"global"}
	for _, e := range c.state.App.Settings.State().Employees {
		ids = append(ids, e.ID)
	}
	return ids
}
