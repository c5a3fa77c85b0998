package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommandBar(t *testing.T) (*commandBar, *App) {
	t.Helper()
	app := testApp(t)
	cb := newCommandBar(&SharedState{App: app})
	return &cb, app
}

// collectMsgs runs cmd and flattens any batches into their messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// statusOf returns the text of the first statusMsg cmd produces.
func statusOf(t *testing.T, cmd tea.Cmd) string {
	t.Helper()
	for _, msg := range collectMsgs(cmd) {
		if s, ok := msg.(statusMsg); ok {
			return s.text
		}
	}
	t.Fatalf("no status message produced")
	return ""
}

func TestExecuteCommand_EmptyAndClear(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Nil(t, c.executeCommand(""))
	assert.Nil(t, c.executeCommand("   "))
}

func TestExecuteCommand_Unknown(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("frobnicate")), "Unknown command: frobnicate")
}

func TestExecuteCommand_UnterminatedQuote(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand(`search "key`)), "unterminated")
}

func TestExecuteCommand_Select(t *testing.T) {
	c, app := newTestCommandBar(t)

	msgs := collectMsgs(c.executeCommand("select EMP002"))
	assert.Equal(t, resolver.Employee("EMP002"), app.Settings.Selection())
	assert.Contains(t, msgs, tea.Msg(selectionChangedMsg{}))
	assert.Contains(t, statusOf(t, c.executeCommand("use EMP003")), "Editing Tanvir Hasan")

	assert.Contains(t, statusOf(t, c.executeCommand("global")), "Editing global settings")
	assert.True(t, app.Settings.Selection().IsGlobal())
}

func TestExecuteCommand_SelectUnknownEmployee(t *testing.T) {
	c, app := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("select EMP404")), "Error:")
	assert.True(t, app.Settings.Selection().IsGlobal())

	assert.Contains(t, statusOf(t, c.executeCommand("select")), "Usage:")
}

func TestExecuteCommand_Search(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("search 'Key Account'")), `1 employee(s) match "Key Account"`)
	assert.Equal(t, "Key Account", c.state.SearchQuery)

	assert.Contains(t, statusOf(t, c.executeCommand("search")), "Search cleared, 3 employees")
	assert.Empty(t, c.state.SearchQuery)
}

func TestExecuteCommand_SetGlobal(t *testing.T) {
	c, app := newTestCommandBar(t)

	status := statusOf(t, c.executeCommand("set revenue 750000"))
	assert.Contains(t, status, "Revenue Target (BDT) set to ৳750,000")
	assert.Equal(t, "750000", app.Settings.Active().TotalRevenue.String())

	// Inheriting employees follow the new global value.
	inheriting := app.Settings.State().Employees[0]
	require.False(t, inheriting.HasOverride())
	c.executeCommand("select EMP001")
	assert.Equal(t, "750000", app.Settings.Active().TotalRevenue.String())
}

func TestExecuteCommand_SetCommissionValueLabelFollowsType(t *testing.T) {
	c, _ := newTestCommandBar(t)
	c.executeCommand("select EMP002")

	status := statusOf(t, c.executeCommand("set value 3.5"))
	assert.Contains(t, status, "Percentage Value (%) set to 3.5%")
}

func TestExecuteCommand_SetErrors(t *testing.T) {
	c, app := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("set onboard")), "Usage:")
	assert.Contains(t, statusOf(t, c.executeCommand("set bonus 5")), "Error:")
	assert.Contains(t, statusOf(t, c.executeCommand("set parcels abc")), "Error:")
	assert.Equal(t, int64(5000), app.Settings.Active().TotalParcels)
}

func TestExecuteCommand_Type(t *testing.T) {
	c, app := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("type percentage")), "Global Percentage (%)")
	assert.Equal(t, domain.CommissionPercentage, app.Settings.Active().CommissionType)

	assert.Contains(t, statusOf(t, c.executeCommand("type hourly")), "Error:")
	assert.Contains(t, statusOf(t, c.executeCommand("type")), "Usage:")
	assert.Equal(t, domain.CommissionPercentage, app.Settings.Active().CommissionType)
}

func TestExecuteCommand_TierAddSetRemove(t *testing.T) {
	c, app := newTestCommandBar(t)
	c.executeCommand("type tiered")

	assert.Contains(t, statusOf(t, c.executeCommand("tier add")), "Added tier 1")
	require.Len(t, app.Settings.Active().Tiers, 1)

	assert.Contains(t, statusOf(t, c.executeCommand("tier set 1 rate 12.5")), "Tier 1 rate updated")
	assert.Contains(t, statusOf(t, c.executeCommand("tier set #1 type percentage")), "Tier 1 type updated")
	tier := app.Settings.Active().Tiers[0]
	assert.Equal(t, "12.5", tier.Rate.String())
	assert.Equal(t, domain.TierPercentage, tier.Type)

	assert.Contains(t, statusOf(t, c.executeCommand("tier rm 1")), "Removed tier 1")
	assert.Empty(t, app.Settings.Active().Tiers)
}

func TestExecuteCommand_TierErrors(t *testing.T) {
	c, app := newTestCommandBar(t)
	c.executeCommand("select EMP003")

	assert.Contains(t, statusOf(t, c.executeCommand("tier")), "Usage:")
	assert.Contains(t, statusOf(t, c.executeCommand("tier shuffle")), "Usage:")
	assert.Contains(t, statusOf(t, c.executeCommand("tier rm")), "Usage:")
	assert.Contains(t, statusOf(t, c.executeCommand("tier rm 9")), "no tier 9")
	assert.Contains(t, statusOf(t, c.executeCommand("tier rm two")), "whole number")
	assert.Contains(t, statusOf(t, c.executeCommand("tier set 1 width 5")), "Error:")
	assert.Contains(t, statusOf(t, c.executeCommand("tier set 1 rate abc")), "Error:")
	assert.Len(t, app.Settings.Active().Tiers, 2)
}

func TestExecuteCommand_Reset(t *testing.T) {
	c, app := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("reset")), "nothing to reset")

	c.executeCommand("select EMP001")
	assert.Contains(t, statusOf(t, c.executeCommand("reset")), "already follows")

	c.executeCommand("select EMP002")
	assert.Contains(t, statusOf(t, c.executeCommand("reset")), "Fatema Akter now follows the global settings")
	e, ok := app.Settings.SelectedEmployee()
	require.True(t, ok)
	assert.False(t, e.HasOverride())
	assert.True(t, app.Settings.IsInheriting())
}

func TestExecuteCommand_Save(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Contains(t, statusOf(t, c.executeCommand("save")), "Settings saved successfully!")
	assert.Contains(t, statusOf(t, c.executeCommand("save all")), "Saved 3 configurations, cleared 1.")
}

func TestExecuteCommand_Saved(t *testing.T) {
	c, app := newTestCommandBar(t)

	msgs := collectMsgs(c.executeCommand("saved"))
	require.Len(t, msgs, 1)
	out, ok := msgs[0].(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, out.output, "Nothing saved yet")

	_, err := app.Settings.Save(context.Background())
	require.NoError(t, err)
	out = collectMsgs(c.executeCommand("saved"))[0].(cmdOutputMsg)
	assert.Contains(t, out.output, "global")
	assert.Contains(t, out.output, "#1")
}

func TestExecuteCommand_Clear(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Equal(t, []tea.Msg{clearScreenMsg{}}, collectMsgs(c.executeCommand("clear")))
	assert.Contains(t, helpText(), "clear")
}

func TestExecuteCommand_HelpAndQuit(t *testing.T) {
	c, _ := newTestCommandBar(t)

	msgs := collectMsgs(c.executeCommand("help"))
	require.Len(t, msgs, 1)
	out, ok := msgs[0].(cmdOutputMsg)
	require.True(t, ok)
	assert.Contains(t, out.output, "Commands")
	assert.Contains(t, out.output, "save all")

	for _, name := range []string{"quit", "exit"} {
		msgs = collectMsgs(c.executeCommand(name))
		assert.Equal(t, []tea.Msg{quitMsg{}}, msgs)
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func TestSuggest_CommandNames(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Nil(t, c.suggest(""))
	assert.Equal(t, []string{"select", "search", "set", "save", "saved"}, c.suggest("s"))
	assert.Equal(t, []string{"type", "tier"}, c.suggest("t"))
}

func TestSuggest_SelectEmployeeIDs(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Equal(t,
		[]string{"select global", "select EMP001", "select EMP002", "select EMP003"},
		c.suggest("select "))
	assert.Equal(t, []string{"select EMP003"}, c.suggest("select emp003"))
}

func TestSuggest_Arguments(t *testing.T) {
	c, _ := newTestCommandBar(t)

	assert.Equal(t, []string{"type tiered"}, c.suggest("type ti"))
	assert.Equal(t, []string{"save all"}, c.suggest("save "))
	assert.Equal(t, []string{"set totalParcels", "set totalRevenue"}, c.suggest("set tot"))
	assert.Equal(t, []string{"tier set 2 rate"}, c.suggest("tier set 2 r"))
	assert.Equal(t, []string{"tier set 1 type flat"}, c.suggest("tier set 1 type f"))
	assert.Nil(t, c.suggest("help me"))
}
