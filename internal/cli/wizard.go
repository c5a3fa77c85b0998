package cli

import (
	"fmt"

	"github.com/alexanderramin/logisales/internal/cli/formatter"
	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/charmbracelet/huh"
)

// huhTheme styles forms with the console palette: indigo while focused,
// grey once a field is left behind.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent, dim, text := formatter.StyleHeader.UnsetBold(), formatter.StyleDim, formatter.StyleFg

	f := &t.Focused
	f.Title = formatter.StyleHeader
	f.Description = dim
	f.ErrorMessage = formatter.StyleRed
	f.SelectSelector = accent
	f.SelectedOption = formatter.StyleGreen
	f.UnselectedOption = text
	f.FocusedButton = text.Background(formatter.ColorHeader).Padding(0, 1)
	f.BlurredButton = dim.Padding(0, 1)
	f.TextInput.Cursor = accent
	f.TextInput.Prompt = accent
	f.TextInput.Text = text
	f.TextInput.Placeholder = dim

	b := &t.Blurred
	b.Title = dim
	b.SelectSelector = dim
	b.SelectedOption = dim
	b.UnselectedOption = dim
	b.TextInput.Prompt = dim
	b.TextInput.Text = dim

	return t
}

func themedForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(huhTheme()).WithShowHelp(false)
}

// wizardEditField creates a form for one scalar settings field, prefilled
// with its current value.
func wizardEditField(field domain.SettingsField, label string, result *string) *huh.Form {
	if field.IsCount() {
		return themedForm(huh.NewGroup(countInput(label, result)))
	}
	return themedForm(huh.NewGroup(amountInput(label, result)))
}

// wizardSelectCommissionType creates a form to choose the commission structure.
func wizardSelectCommissionType(result *domain.CommissionType) *huh.Form {
	options := make([]huh.Option[domain.CommissionType], 0, len(domain.CommissionTypes))
	for _, t := range domain.CommissionTypes {
		options = append(options, huh.NewOption(formatter.CommissionOptionLabel(t), t))
	}
	return themedForm(huh.NewGroup(
		huh.NewSelect[domain.CommissionType]().
			Title("Commission Structure").
			Options(options...).
			Value(result),
	))
}

// tierInput holds the editable text of one tier while its form is open.
type tierInput struct {
	From string
	To   string
	Rate string
	Type domain.TierType
}

func newTierInput(t domain.CommissionTier) *tierInput {
	return &tierInput{
		From: domain.TierFieldValue(t, domain.TierFieldFrom),
		To:   domain.TierFieldValue(t, domain.TierFieldTo),
		Rate: domain.TierFieldValue(t, domain.TierFieldRate),
		Type: t.Type,
	}
}

func (in *tierInput) value(f domain.TierField) string {
	switch f {
	case domain.TierFieldFrom:
		return in.From
	case domain.TierFieldTo:
		return in.To
	case domain.TierFieldRate:
		return in.Rate
	case domain.TierFieldType:
		return string(in.Type)
	}
	return ""
}

type tierChange struct {
	field domain.TierField
	raw   string
}

// tierFormOrder is the order the tier form shows its fields.
var tierFormOrder = []domain.TierField{
	domain.TierFieldFrom,
	domain.TierFieldTo,
	domain.TierFieldType,
	domain.TierFieldRate,
}

// changes lists the fields of in that differ from t, in form order.
func (in *tierInput) changes(t domain.CommissionTier) []tierChange {
	var out []tierChange
	for _, f := range tierFormOrder {
		if v := in.value(f); v != domain.TierFieldValue(t, f) {
			out = append(out, tierChange{f, v})
		}
	}
	return out
}

// wizardEditTier creates a form editing every field of one tier.
func wizardEditTier(row int, in *tierInput) *huh.Form {
	return themedForm(huh.NewGroup(
		amountInput(fmt.Sprintf("Tier %d: From (parcels)", row), &in.From),
		amountInput("To (parcels)", &in.To),
		huh.NewSelect[domain.TierType]().
			Title("Rate Type").
			Options(
				huh.NewOption(formatter.TierTypeLabel(domain.TierFlat)+" (per parcel)", domain.TierFlat),
				huh.NewOption(formatter.TierTypeLabel(domain.TierPercentage)+" (of revenue)", domain.TierPercentage),
			).
			Value(&in.Type),
		amountInput("Rate", &in.Rate),
	))
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return themedForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(result),
	))
}

// validateAmount accepts anything domain.ParseAmount accepts.
func validateAmount(s string) error {
	if _, err := domain.ParseAmount(s); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// validateCount accepts whole numbers only.
func validateCount(s string) error {
	if _, err := domain.ParseCount(s); err != nil {
		return fmt.Errorf("enter a whole number")
	}
	return nil
}
