package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/alexanderramin/logisales/internal/service"
	"github.com/charmbracelet/lipgloss"
)

const (
	globalTitle    = "Default Global Configuration"
	globalSubtitle = "Define the standard targets used system-wide as the baseline."
	memberSubtitle = "Override global defaults for this specific member to match their performance tier."
	noTiersHint    = `No tiers defined. Press "a" to add a tier.`
	tieredNote     = "Tiers may mix flat rates per parcel and percentage of revenue."
)

// SettingsReport is everything the settings panel shows for one selection.
type SettingsReport struct {
	Employee   *domain.Employee // nil for the global selection
	Settings   domain.TargetSettings
	Inheriting bool
	LastSaved  *domain.SavedSettings
}

// PanelTitle is "Default Global Configuration" or "<Name>'s Configuration".
func PanelTitle(e *domain.Employee) string {
	if e == nil {
		return globalTitle
	}
	return e.Name + "'s Configuration"
}

func PanelSubtitle(e *domain.Employee) string {
	if e == nil {
		return globalSubtitle
	}
	return memberSubtitle
}

// InheritNotice is the explanation printed under the inherit banner.
func InheritNotice(e domain.Employee) string {
	return fmt.Sprintf("Currently using the system default. Modify any field to create a personalized target for %s.", e.Name)
}

// FieldLabel is the row label for a scalar field. The commission value label
// depends on the active policy.
func FieldLabel(f domain.SettingsField, t domain.CommissionType) string {
	switch f {
	case domain.FieldMerchantOnboard:
		return "Merchant Onboard Target"
	case domain.FieldTotalParcels:
		return "Total Parcel Target"
	case domain.FieldTotalRevenue:
		return "Revenue Target (BDT)"
	case domain.FieldCommissionValue:
		return CommissionValueLabel(t)
	}
	return string(f)
}

// FieldDisplay renders a scalar field value for reading, with its unit.
func FieldDisplay(s domain.TargetSettings, f domain.SettingsField, currency string) string {
	switch f {
	case domain.FieldMerchantOnboard:
		return GroupThousands(s.MerchantOnboard)
	case domain.FieldTotalParcels:
		return GroupThousands(s.TotalParcels)
	case domain.FieldTotalRevenue:
		return currency + FormatAmount(s.TotalRevenue)
	case domain.FieldCommissionValue:
		if s.CommissionType == domain.CommissionPercentage {
			return FormatAmount(s.CommissionValue) + "%"
		}
		return currency + FormatAmount(s.CommissionValue)
	}
	return ""
}

// FormatSettings renders a selection's settings for the show command.
func FormatSettings(r SettingsReport, currency string) string {
	var b strings.Builder

	title := PanelTitle(r.Employee)
	if r.Employee != nil {
		title = r.Employee.Initials() + "  " + title
	}
	b.WriteString(Header(title) + "\n")
	b.WriteString(Dim(PanelSubtitle(r.Employee)) + "\n\n")

	if r.Inheriting && r.Employee != nil {
		b.WriteString(InheritBadge() + "\n")
		b.WriteString(Dim(InheritNotice(*r.Employee)) + "\n\n")
	}

	s := r.Settings
	rows := [][]string{
		{FieldLabel(domain.FieldMerchantOnboard, s.CommissionType), FieldDisplay(s, domain.FieldMerchantOnboard, currency)},
		{FieldLabel(domain.FieldTotalParcels, s.CommissionType), FieldDisplay(s, domain.FieldTotalParcels, currency)},
		{FieldLabel(domain.FieldTotalRevenue, s.CommissionType), FieldDisplay(s, domain.FieldTotalRevenue, currency)},
		{"Commission Structure", CommissionStyle(s.CommissionType).Render(CommissionOptionLabel(s.CommissionType))},
	}
	if s.CommissionType != domain.CommissionTiered {
		rows = append(rows, []string{
			FieldLabel(domain.FieldCommissionValue, s.CommissionType),
			FieldDisplay(s, domain.FieldCommissionValue, currency),
		})
	}
	for _, row := range rows {
		b.WriteString("  " + padRight(Dim(row[0]), 26) + row[1] + "\n")
	}

	if s.CommissionType == domain.CommissionTiered {
		b.WriteString("\n" + StyleBold.Render("Configure Volume Tiers") + "\n")
		b.WriteString(FormatTiers(s.Tiers, currency))
		if issues := FormatTierIssues(domain.CheckTiers(s.Tiers)); issues != "" {
			b.WriteString(issues)
		}
		b.WriteString(Dim(tieredNote) + "\n")
	}

	b.WriteString("\n" + SummaryCards(s, currency) + "\n")

	if r.LastSaved != nil {
		b.WriteString(Dim(fmt.Sprintf("Last saved %s (save #%d)",
			HumanTimestamp(r.LastSaved.SavedAt), r.LastSaved.SaveCount)) + "\n")
	}
	return b.String()
}

// FormatTiers renders the tier list as a table, or the empty-state hint.
func FormatTiers(tiers []domain.CommissionTier, currency string) string {
	if len(tiers) == 0 {
		return "  " + Dim(noTiersHint) + "\n"
	}
	rows := make([][]string, 0, len(tiers))
	for i, t := range tiers {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			FormatAmount(t.From),
			FormatAmount(t.To),
			TierRate(t, currency),
			TierTypeLabel(t.Type),
		})
	}
	return RenderTable([]string{"#", "From", "To", "Rate", "Type"}, rows)
}

// FormatTierIssues lists advisory tier warnings, one per line.
func FormatTierIssues(issues []domain.TierIssue) string {
	if len(issues) == 0 {
		return ""
	}
	var b strings.Builder
	for _, is := range issues {
		b.WriteString(StyleYellow.Render("⚠ "+is.String()) + "\n")
	}
	return b.String()
}

type summaryCard struct {
	label, value, unit string
	accent             lipgloss.Style
}

// SummaryCards renders the four read-only summary cards side by side.
func SummaryCards(s domain.TargetSettings, currency string) string {
	cards := []summaryCard{
		{"Onboarding Target", GroupThousands(s.MerchantOnboard), "New Stores", StyleBold},
		{"Parcel Goal", GroupThousands(s.TotalParcels), "Packages", StyleBold},
		{"Revenue Target", RevenueShort(s.TotalRevenue, currency), "Gross Sales", StyleBold},
		{"Commission Logic", CommissionLabel(s.CommissionType), "Policy", StyleHeader},
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1).
		Width(20)

	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = box.Render(
			Dim(strings.ToUpper(c.label)) + "\n" +
				c.accent.Render(c.value) + " " + Dim(c.unit),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// FormatEmployees renders the employee list with override markers.
func FormatEmployees(employees []domain.Employee, currency string) string {
	if len(employees) == 0 {
		return Dim("No employees found") + "\n"
	}
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		setting := Dim("Global")
		if e.HasOverride() {
			setting = CommissionSummary(*e.IndividualSettings, currency)
		}
		rows = append(rows, []string{
			OverrideMarker(e),
			Initials(e),
			e.ID,
			e.Name,
			Dim(e.Role),
			setting,
		})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"", "", "ID", "Name", "Role", "Commission"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d employees, %d with individual settings", len(employees), countOverrides(employees))) + "\n")
	return b.String()
}

func countOverrides(employees []domain.Employee) int {
	n := 0
	for _, e := range employees {
		if e.HasOverride() {
			n++
		}
	}
	return n
}

// FormatSaveResult renders the outcome of a save.
func FormatSaveResult(res *service.SaveResult) string {
	if res == nil {
		return ""
	}
	if !res.Persisted {
		return StyleYellow.Render("Settings applied for this session (saving is disabled).")
	}
	msg := "Settings saved successfully!"
	if res.Saved+res.Cleared > 1 {
		msg = fmt.Sprintf("Saved %d configurations, cleared %d.", res.Saved, res.Cleared)
	}
	return StyleGreen.Render("✔ " + msg)
}

// FormatSavedList renders every saved scope with its commission and when it
// was last saved.
func FormatSavedList(saved []*domain.SavedSettings, currency string) string {
	if len(saved) == 0 {
		return Dim("Nothing saved yet") + "\n"
	}
	rows := make([][]string, 0, len(saved))
	for _, s := range saved {
		rows = append(rows, []string{
			s.Scope,
			GroupThousands(s.Settings.TotalParcels),
			CommissionSummary(s.Settings, currency),
			HumanTimestamp(s.SavedAt),
			fmt.Sprintf("#%d", s.SaveCount),
		})
	}
	return RenderTable([]string{"Scope", "Parcels", "Commission", "Saved", "Saves"}, rows)
}

// FormatSeedErrors lists seed validation problems.
func FormatSeedErrors(path string, errs []error) string {
	if len(errs) == 0 {
		return StyleGreen.Render("✔ "+path+" is valid") + "\n"
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("✖ %s: %d problem(s)", path, len(errs))) + "\n")
	for _, err := range errs {
		b.WriteString("  - " + err.Error() + "\n")
	}
	return b.String()
}
