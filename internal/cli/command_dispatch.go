package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
	"github.com/alexanderramin/logisales/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand dispatches a command bar line and returns a tea.Cmd.
// Edits report through the status bar; help uses the output area.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitArgs(input)
	if err != nil {
		return statusCmd(errorText(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	ctx := context.Background()

	switch cmd {
	case "global":
		return c.cmdSelect(ctx, resolver.Global)
	case "select", "use":
		if len(args) != 1 {
			return usage("select EMPLOYEE_ID|global")
		}
		return c.cmdSelect(ctx, resolver.ParseSelection(args[0]))
	case "search":
		c.state.SearchQuery = strings.Join(args, " ")
		n := len(c.state.VisibleEmployees())
		if c.state.SearchQuery == "" {
			return statusCmd(formatter.Dim(fmt.Sprintf("Search cleared, %d employees", n)))
		}
		return statusCmd(formatter.Dim(fmt.Sprintf("%d employee(s) match %q", n, c.state.SearchQuery)))
	case "set":
		return c.cmdSet(ctx, args)
	case "type":
		return c.cmdType(ctx, args)
	case "tier", "tiers":
		return c.cmdTier(ctx, args)
	case "reset":
		return resetSelection(ctx, c.state.App.Settings)
	case "save":
		if len(args) > 0 && strings.EqualFold(args[0], "all") {
			return saveCmd(c.state.App.Settings, true)
		}
		return saveCmd(c.state.App.Settings, false)
	case "saved":
		return savedListCmd(c.state.App.Settings, c.state.Currency())
	case "help":
		return outputCmd(helpText())
	case "clear":
		return func() tea.Msg { return clearScreenMsg{} }
	case "exit", "quit":
		return func() tea.Msg { return quitMsg{} }
	default:
		return statusCmd(formatter.StyleYellow.Render(
			fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", cmd)))
	}
}

func (c *commandBar) cmdSelect(ctx context.Context, sel resolver.Selection) tea.Cmd {
	svc := c.state.App.Settings
	if err := svc.Select(ctx, sel); err != nil {
		return statusCmd(errorText(err))
	}
	return tea.Batch(
		func() tea.Msg { return selectionChangedMsg{} },
		statusCmd(formatter.Dim("Editing "+selectionLabel(svc))),
	)
}

func (c *commandBar) cmdSet(ctx context.Context, args []string) tea.Cmd {
	if len(args) < 2 {
		return usage("set FIELD VALUE  (fields: onboard, parcels, revenue, value)")
	}
	field, err := domain.ParseSettingsField(args[0])
	if err != nil {
		return statusCmd(errorText(err))
	}
	raw := strings.Join(args[1:], " ")
	svc := c.state.App.Settings
	if err := svc.SetField(ctx, field, raw); err != nil {
		return statusCmd(errorText(err))
	}
	s := svc.Active()
	return statusCmd(formatter.StyleGreen.Render(fmt.Sprintf("%s set to %s",
		formatter.FieldLabel(field, s.CommissionType), formatter.FieldDisplay(s, field, c.state.Currency()))))
}

func (c *commandBar) cmdType(ctx context.Context, args []string) tea.Cmd {
	if len(args) != 1 {
		return usage("type flat|percentage|tiered")
	}
	t, err := domain.ParseCommissionType(args[0])
	if err != nil {
		return statusCmd(errorText(err))
	}
	if err := c.state.App.Settings.SetCommissionType(ctx, t); err != nil {
		return statusCmd(errorText(err))
	}
	return statusCmd(formatter.StyleGreen.Render("Commission structure: " + formatter.CommissionOptionLabel(t)))
}

func (c *commandBar) cmdTier(ctx context.Context, args []string) tea.Cmd {
	if len(args) == 0 {
		return usage("tier add | tier rm N | tier set N FIELD VALUE")
	}
	svc := c.state.App.Settings

	switch strings.ToLower(args[0]) {
	case "add":
		t, err := svc.AddTier(ctx)
		if err != nil {
			return statusCmd(errorText(err))
		}
		return statusCmd(formatter.StyleGreen.Render(fmt.Sprintf("Added tier %d (%s – %s)",
			len(svc.Active().Tiers), formatter.FormatAmount(t.From), formatter.FormatAmount(t.To))))

	case "rm", "remove", "del":
		if len(args) != 2 {
			return usage("tier rm N")
		}
		row, tier, err := c.resolveTier(args[1])
		if err != nil {
			return statusCmd(errorText(err))
		}
		if err := svc.RemoveTier(ctx, tier.ID); err != nil {
			return statusCmd(errorText(err))
		}
		return statusCmd(formatter.StyleGreen.Render(fmt.Sprintf("Removed tier %d", row)))

	case "set":
		if len(args) < 4 {
			return usage("tier set N from|to|rate|type VALUE")
		}
		row, tier, err := c.resolveTier(args[1])
		if err != nil {
			return statusCmd(errorText(err))
		}
		field, err := domain.ParseTierField(args[2])
		if err != nil {
			return statusCmd(errorText(err))
		}
		if err := svc.UpdateTier(ctx, tier.ID, field, strings.Join(args[3:], " ")); err != nil {
			return statusCmd(errorText(err))
		}
		return statusCmd(formatter.StyleGreen.Render(fmt.Sprintf("Tier %d %s updated", row, field)))
	}
	return usage("tier add | tier rm N | tier set N FIELD VALUE")
}

// resolveTier maps a 1-based row argument to a tier of the active settings.
func (c *commandBar) resolveTier(arg string) (int, domain.CommissionTier, error) {
	row, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, domain.CommissionTier{}, fmt.Errorf("tier number must be a whole number, got %q", arg)
	}
	t, err := tierAt(c.state.App.Settings.Active(), row)
	return row, t, err
}

// resetSelection drops the selected employee's override.
func resetSelection(ctx context.Context, svc service.SettingsService) tea.Cmd {
	e, ok := svc.SelectedEmployee()
	if !ok {
		return statusCmd(formatter.StyleYellow.Render("Global settings are the baseline; there is nothing to reset to."))
	}
	if !e.HasOverride() {
		return statusCmd(formatter.Dim(e.Name + " already follows the global settings."))
	}
	if err := svc.ResetToDefault(ctx); err != nil {
		return statusCmd(errorText(err))
	}
	return statusCmd(formatter.StyleGreen.Render(e.Name + " now follows the global settings."))
}

// saveCmd saves off the UI goroutine and reports in the status bar.
func saveCmd(svc service.SettingsService, all bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			res *service.SaveResult
			err error
		)
		if all {
			res, err = svc.SaveAll(ctx)
		} else {
			res, err = svc.Save(ctx)
		}
		if err != nil {
			return statusMsg{text: errorText(err)}
		}
		return statusMsg{text: formatter.FormatSaveResult(res)}
	}
}

// savedListCmd reads the save store off the UI goroutine and shows every
// saved scope in the output area.
func savedListCmd(svc service.SettingsService, currency string) tea.Cmd {
	return func() tea.Msg {
		saved, err := svc.ListSaved(context.Background())
		if err != nil {
			return statusMsg{text: errorText(err)}
		}
		return cmdOutputMsg{output: "\n" + formatter.Header("Saved settings") + "\n" + formatter.FormatSavedList(saved, currency)}
	}
}

// outputCmd returns a tea.Cmd that sends a cmdOutputMsg.
func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func usage(s string) tea.Cmd {
	return statusCmd(formatter.StyleYellow.Render("Usage: " + s))
}

func errorText(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

func helpText() string {
	rows := [][]string{
		{"global", "Edit the global settings"},
		{"select ID", "Edit one employee's settings"},
		{"search [TEXT]", "Filter the employee list (no text clears it)"},
		{"set FIELD VALUE", "Set onboard, parcels, revenue or value"},
		{"type flat|percentage|tiered", "Choose the commission structure"},
		{"tier add", "Append a tier after the last one"},
		{"tier rm N", "Remove tier N"},
		{"tier set N FIELD VALUE", "Set from, to, rate or type of tier N"},
		{"reset", "Drop the selected employee's override"},
		{"save", "Save the current selection"},
		{"save all", "Save global and every employee"},
		{"saved", "List what has been saved"},
		{"clear", "Clear output, status and search"},
		{"help", "Show this help"},
		{"quit", "Leave the console"},
	}
	keys := [][]string{
		{"tab", "Switch between employee list and settings"},
		{"↑/↓", "Move"},
		{"enter", "Edit the highlighted row"},
		{"/", "Search employees (esc clears)"},
		{"a / x", "Add tier / remove highlighted tier"},
		{"g", "Jump to global settings"},
		{"r", "Reset employee to global"},
		{"s", "Save"},
	}

	var b strings.Builder
	b.WriteString("\n" + formatter.Header("Commands") + "\n")
	b.WriteString(formatter.RenderTable([]string{"Command", "Description"}, rows))
	b.WriteString("\n" + formatter.Header("Keys") + "\n")
	b.WriteString(formatter.RenderTable([]string{"Key", "Action"}, keys))
	return b.String()
}
