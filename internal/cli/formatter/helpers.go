package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n" + content)
	}
	return boxStyle.Render(content)
}

// GroupThousands inserts "," every three digits: 5000 -> "5,000".
func GroupThousands(n int64) string {
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatAmount renders a decimal with grouped integer digits and its
// fraction as entered, e.g. "500,000" or "12.75".
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := groupDigits(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

// RevenueShort renders revenue in thousands with no decimals: "৳500k".
func RevenueShort(revenue decimal.Decimal, currency string) string {
	k := revenue.Div(decimal.NewFromInt(1000)).Round(0)
	return currency + FormatAmount(k) + "k"
}

// CommissionLabel is the short policy name shown on the summary card.
func CommissionLabel(t domain.CommissionType) string {
	switch t {
	case domain.CommissionFlat:
		return "Flat Rate"
	case domain.CommissionPercentage:
		return "Percentage"
	case domain.CommissionTiered:
		return "Tiered"
	}
	return string(t)
}

// CommissionOptionLabel is the label used in the commission structure selector.
func CommissionOptionLabel(t domain.CommissionType) string {
	switch t {
	case domain.CommissionFlat:
		return "Global Flat Fee"
	case domain.CommissionPercentage:
		return "Global Percentage (%)"
	case domain.CommissionTiered:
		return "Tiered Structure"
	}
	return string(t)
}

func TierTypeLabel(t domain.TierType) string {
	if t == domain.TierPercentage {
		return "%"
	}
	return "Flat"
}

// UnitSuffix is "%" for percentages and the currency symbol otherwise.
func UnitSuffix(percent bool, currency string) string {
	if percent {
		return "%"
	}
	return currency
}

// CommissionValueLabel names the commission value row for a policy.
func CommissionValueLabel(t domain.CommissionType) string {
	if t == domain.CommissionPercentage {
		return "Percentage Value (%)"
	}
	return "Flat Rate (BDT)"
}

// CommissionSummary renders the resolved policy on one line, e.g.
// "Flat Rate ৳200", "Percentage 2.5%" or "Tiered (3 tiers)".
func CommissionSummary(s domain.TargetSettings, currency string) string {
	switch p := s.Policy().(type) {
	case domain.FlatPolicy:
		return fmt.Sprintf("Flat Rate %s%s", currency, FormatAmount(p.Amount))
	case domain.PercentagePolicy:
		return fmt.Sprintf("Percentage %s%%", FormatAmount(p.Percent))
	case domain.TieredPolicy:
		if len(p.Tiers) == 1 {
			return "Tiered (1 tier)"
		}
		return fmt.Sprintf("Tiered (%d tiers)", len(p.Tiers))
	}
	return ""
}

// TierRate renders a tier's rate with its unit: "৳5" or "2.5%".
func TierRate(t domain.CommissionTier, currency string) string {
	if t.Type == domain.TierPercentage {
		return FormatAmount(t.Rate) + "%"
	}
	return currency + FormatAmount(t.Rate)
}

// Initials renders an employee's initials as a small badge.
func Initials(e domain.Employee) string {
	return StyleBlue.Render(e.Initials())
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

// HumanTimestampFrom is HumanTimestamp against a fixed reference time.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Local().Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Local().Format("Jan 2, 2006 15:04")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// padRight pads s with spaces to a visible width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
