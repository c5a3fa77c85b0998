package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/resolver"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 34

type focusRegion int

const (
	focusSidebar focusRegion = iota
	focusPanel
)

type rowKind int

const (
	rowField rowKind = iota
	rowCommissionType
	rowTier
)

// panelRow is one editable line of the settings panel.
type panelRow struct {
	kind  rowKind
	field domain.SettingsField // rowField
	tier  int                  // rowTier: index into Tiers
}

// panelRows lists the editable rows for s: the three targets, the commission
// structure, then either the commission value or one row per tier.
func panelRows(s domain.TargetSettings) []panelRow {
	rows := []panelRow{
		{kind: rowField, field: domain.FieldMerchantOnboard},
		{kind: rowField, field: domain.FieldTotalParcels},
		{kind: rowField, field: domain.FieldTotalRevenue},
		{kind: rowCommissionType},
	}
	if s.CommissionType != domain.CommissionTiered {
		return append(rows, panelRow{kind: rowField, field: domain.FieldCommissionValue})
	}
	for i := range s.Tiers {
		rows = append(rows, panelRow{kind: rowTier, tier: i})
	}
	return rows
}

// settingsView is the home view: the employee sidebar on the left and the
// settings panel for the current selection on the right. It keeps no copy
// of the settings; every render reads the service.
type settingsView struct {
	state     *SharedState
	focus     focusRegion
	cursor    int // panel row
	searching bool
}

func newSettingsView(state *SharedState) *settingsView {
	return &settingsView{state: state}
}

func (v *settingsView) ID() ViewID { return ViewSettings }

func (v *settingsView) Title() string {
	if e, ok := v.state.App.Settings.SelectedEmployee(); ok {
		return e.Name
	}
	return "Global"
}

func (v *settingsView) capturesInput() bool { return v.searching }

func (v *settingsView) ShortHelp() []key.Binding {
	if v.searching {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		}
	}
	svc := v.state.App.Settings
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	}
	if svc.Active().CommissionType == domain.CommissionTiered {
		hints = append(hints, key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tier")))
		if row, ok := v.currentRow(); ok && row.kind == rowTier && v.focus == focusPanel {
			hints = append(hints, key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove tier")))
		}
	}
	if e, ok := svc.SelectedEmployee(); ok {
		if e.HasOverride() {
			hints = append(hints, key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset to global")))
		}
		hints = append(hints, key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "global")))
	}
	return hints
}

func (v *settingsView) Init() tea.Cmd { return nil }

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case selectionChangedMsg:
		v.cursor = 0
		return v, nil
	case refreshViewMsg:
		v.clampCursor()
		return v, nil
	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *settingsView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	svc := v.state.App.Settings

	switch msg.String() {
	case "tab", "shift+tab":
		if v.focus == focusSidebar {
			v.focus = focusPanel
		} else {
			v.focus = focusSidebar
		}
	case "up", "k":
		if v.focus == focusSidebar {
			return v, v.moveSelection(ctx, -1)
		}
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.focus == focusSidebar {
			return v, v.moveSelection(ctx, 1)
		}
		if v.cursor < len(panelRows(svc.Active()))-1 {
			v.cursor++
		}
	case "enter":
		if v.focus == focusSidebar {
			v.focus = focusPanel
			return v, nil
		}
		return v, v.editRow(ctx)
	case "/":
		v.searching = true
		v.focus = focusSidebar
	case "g":
		if err := svc.Select(ctx, resolver.Global); err != nil {
			return v, statusCmd(errorText(err))
		}
		v.cursor = 0
	case "s":
		return v, saveCmd(svc, false)
	case "r":
		return v, v.confirmReset(ctx)
	case "a":
		return v, v.addTier(ctx)
	case "x":
		return v, v.removeTier(ctx)
	}
	return v, nil
}

func (v *settingsView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.searching = false
		v.state.SearchQuery = ""
	case tea.KeyEnter:
		v.searching = false
	case tea.KeyBackspace:
		if q := []rune(v.state.SearchQuery); len(q) > 0 {
			v.state.SearchQuery = string(q[:len(q)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		v.state.SearchQuery += string(msg.Runes)
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			v.state.SearchQuery += " "
		}
	}
	return v, nil
}

// sidebarIndex returns the selection's position in the sidebar: 0 for
// global, i+1 for visible employee i, -1 when the selected employee is
// hidden by the search.
func (v *settingsView) sidebarIndex(visible []domain.Employee) int {
	sel := v.state.App.Settings.Selection()
	if sel.IsGlobal() {
		return 0
	}
	for i, e := range visible {
		if e.ID == sel.EmployeeID() {
			return i + 1
		}
	}
	return -1
}

// moveSelection selects the sidebar entry delta rows away.
func (v *settingsView) moveSelection(ctx context.Context, delta int) tea.Cmd {
	visible := v.state.VisibleEmployees()
	idx := v.sidebarIndex(visible)
	next := idx + delta
	if idx < 0 {
		next = 0
	}
	next = max(0, min(next, len(visible)))
	if next == idx {
		return nil
	}

	sel := resolver.Global
	if next > 0 {
		sel = resolver.Employee(visible[next-1].ID)
	}
	if err := v.state.App.Settings.Select(ctx, sel); err != nil {
		return statusCmd(errorText(err))
	}
	v.cursor = 0
	return nil
}

func (v *settingsView) currentRow() (panelRow, bool) {
	rows := panelRows(v.state.App.Settings.Active())
	if v.cursor < 0 || v.cursor >= len(rows) {
		return panelRow{}, false
	}
	return rows[v.cursor], true
}

func (v *settingsView) clampCursor() {
	n := len(panelRows(v.state.App.Settings.Active()))
	v.cursor = max(0, min(v.cursor, n-1))
}

// editRow opens the form for the highlighted panel row.
func (v *settingsView) editRow(ctx context.Context) tea.Cmd {
	row, ok := v.currentRow()
	if !ok {
		return nil
	}
	svc := v.state.App.Settings
	s := svc.Active()

	switch row.kind {
	case rowField:
		label := formatter.FieldLabel(row.field, s.CommissionType)
		value := domain.FieldValue(s, row.field)
		form := wizardEditField(row.field, label, &value)
		return openFormCmd(label, form, func() tea.Cmd {
			if err := svc.SetField(ctx, row.field, value); err != nil {
				return statusCmd(errorText(err))
			}
			return statusCmd(formatter.StyleGreen.Render(label + " updated"))
		})

	case rowCommissionType:
		choice := s.CommissionType
		form := wizardSelectCommissionType(&choice)
		return openFormCmd("Commission Structure", form, func() tea.Cmd {
			if choice == s.CommissionType {
				return nil
			}
			if err := svc.SetCommissionType(ctx, choice); err != nil {
				return statusCmd(errorText(err))
			}
			return statusCmd(formatter.StyleGreen.Render("Commission structure: " + formatter.CommissionOptionLabel(choice)))
		})

	case rowTier:
		tier := s.Tiers[row.tier]
		in := newTierInput(tier)
		title := fmt.Sprintf("Tier %d", row.tier+1)
		return openFormCmd(title, wizardEditTier(row.tier+1, in), func() tea.Cmd {
			for _, ch := range in.changes(tier) {
				if err := svc.UpdateTier(ctx, tier.ID, ch.field, ch.raw); err != nil {
					return statusCmd(errorText(err))
				}
			}
			return statusCmd(formatter.StyleGreen.Render(title + " updated"))
		})
	}
	return nil
}

func (v *settingsView) addTier(ctx context.Context) tea.Cmd {
	svc := v.state.App.Settings
	if svc.Active().CommissionType != domain.CommissionTiered {
		return statusCmd(formatter.StyleYellow.Render("Switch the commission structure to Tiered Structure to add tiers."))
	}
	if _, err := svc.AddTier(ctx); err != nil {
		return statusCmd(errorText(err))
	}
	v.focus = focusPanel
	v.cursor = len(panelRows(svc.Active())) - 1
	return nil
}

func (v *settingsView) removeTier(ctx context.Context) tea.Cmd {
	row, ok := v.currentRow()
	if !ok || row.kind != rowTier || v.focus != focusPanel {
		return nil
	}
	svc := v.state.App.Settings
	tier := svc.Active().Tiers[row.tier]
	if err := svc.RemoveTier(ctx, tier.ID); err != nil {
		return statusCmd(errorText(err))
	}
	v.clampCursor()
	return statusCmd(formatter.Dim(fmt.Sprintf("Removed tier %d", row.tier+1)))
}

// confirmReset asks before dropping the selected employee's override.
func (v *settingsView) confirmReset(ctx context.Context) tea.Cmd {
	svc := v.state.App.Settings
	e, ok := svc.SelectedEmployee()
	if !ok || !e.HasOverride() {
		return resetSelection(ctx, svc)
	}
	confirmed := true
	form := wizardConfirm(fmt.Sprintf("Reset %s to the global settings?", e.Name), &confirmed)
	return openFormCmd("Reset", form, func() tea.Cmd {
		if !confirmed {
			return statusCmd(formatter.Dim("Reset cancelled."))
		}
		v.cursor = 0
		return resetSelection(ctx, svc)
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *settingsView) View() string {
	width := v.state.Width
	if width <= 0 {
		width = 120
	}
	panelWidth := max(width-sidebarWidth-2, 40)

	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(v.renderSidebar())
	panel := lipgloss.NewStyle().Width(panelWidth).Render(v.renderPanel())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", panel)
}

func (v *settingsView) pointer(selected bool) string {
	if !selected {
		return "  "
	}
	if v.focus == focusSidebar {
		return formatter.StyleGreen.Render("▸ ")
	}
	return formatter.Dim("▸ ")
}

func (v *settingsView) renderSidebar() string {
	svc := v.state.App.Settings
	visible := v.state.VisibleEmployees()
	current := v.sidebarIndex(visible)

	var b strings.Builder
	b.WriteString("\n")

	globalLabel := formatter.StyleFg.Render("◆ Default Global Setup")
	if current == 0 {
		globalLabel = formatter.StyleHeader.Render("◆ Default Global Setup")
	}
	b.WriteString(v.pointer(current == 0) + globalLabel + "\n\n")

	total := len(svc.State().Employees)
	b.WriteString("  " + formatter.StyleBold.Render("INDIVIDUAL SETUP") + " " +
		formatter.StylePurple.Render(fmt.Sprintf("[%d]", total)) + "\n")

	switch {
	case v.searching:
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.state.SearchQuery + "█\n\n")
	case v.state.SearchQuery != "":
		b.WriteString("  " + formatter.Dim("/ ") + v.state.SearchQuery + "\n\n")
	default:
		b.WriteString("  " + formatter.Dim("/ Search employee...") + "\n\n")
	}

	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No employees found") + "\n")
		return b.String()
	}

	for i, e := range visible {
		selected := current == i+1
		name := formatter.StyleFg.Render(e.Name)
		if selected {
			name = formatter.StyleBold.Render(e.Name)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			v.pointer(selected),
			formatter.Initials(e),
			name,
			formatter.OverrideMarker(e),
		))
		b.WriteString("     " + formatter.Dim(e.Role) + "\n")
	}
	return b.String()
}

func (v *settingsView) renderPanel() string {
	svc := v.state.App.Settings
	currency := v.state.Currency()
	s := svc.Active()

	var emp *domain.Employee
	if e, ok := svc.SelectedEmployee(); ok {
		emp = &e
	}

	var b strings.Builder
	b.WriteString("\n")
	title := formatter.PanelTitle(emp)
	if emp != nil {
		title = formatter.Initials(*emp) + "  " + formatter.StyleHeader.Render(title)
	} else {
		title = formatter.StyleHeader.Render(title)
	}
	b.WriteString(title + "\n")
	b.WriteString(formatter.Dim(formatter.PanelSubtitle(emp)) + "\n\n")

	if emp != nil && !emp.HasOverride() {
		b.WriteString(formatter.InheritBadge() + "\n")
		b.WriteString(formatter.Dim(formatter.InheritNotice(*emp)) + "\n\n")
	}

	b.WriteString(formatter.StyleBold.Render("TARGET & COMMISSION CONFIGURATION") + "\n")

	issues := map[int]bool{}
	for _, is := range domain.CheckTiers(s.Tiers) {
		issues[is.Index] = true
	}

	for i, row := range panelRows(s) {
		selected := v.focus == focusPanel && i == v.cursor
		cursor := "  "
		if selected {
			cursor = formatter.StyleGreen.Render("▸ ")
		}

		switch row.kind {
		case rowField:
			label := formatter.FieldLabel(row.field, s.CommissionType)
			b.WriteString(cursor + padRight(label, 26) + formatter.StyleBold.Render(formatter.FieldDisplay(s, row.field, currency)) + "\n")
		case rowCommissionType:
			b.WriteString(cursor + padRight("Commission Structure", 26) +
				formatter.CommissionStyle(s.CommissionType).Render(formatter.CommissionOptionLabel(s.CommissionType)) + "\n")
			if s.CommissionType == domain.CommissionTiered {
				b.WriteString("\n  " + formatter.StyleBold.Render("CONFIGURE VOLUME TIERS") + "\n")
				if len(s.Tiers) == 0 {
					b.WriteString("  " + formatter.Dim(`No tiers defined. Press "a" to add a tier.`) + "\n")
				}
			}
		case rowTier:
			t := s.Tiers[row.tier]
			warn := " "
			if issues[row.tier] {
				warn = formatter.StyleYellow.Render("⚠")
			}
			b.WriteString(fmt.Sprintf("%s%s %-3s %s – %s  %s  %s\n",
				cursor, warn,
				fmt.Sprintf("%d", row.tier+1),
				padRight(formatter.FormatAmount(t.From), 10),
				padRight(formatter.FormatAmount(t.To), 10),
				padRight(formatter.TierRate(t, currency), 10),
				formatter.Dim(formatter.TierTypeLabel(t.Type)),
			))
		}
	}

	if w := formatter.FormatTierIssues(domain.CheckTiers(s.Tiers)); w != "" && s.CommissionType == domain.CommissionTiered {
		b.WriteString("\n" + w)
	}

	b.WriteString("\n" + formatter.SummaryCards(s, currency) + "\n")
	return b.String()
}

// padRight pads s with spaces to a visible width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
