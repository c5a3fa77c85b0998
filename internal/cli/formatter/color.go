package formatter

import (
	"strings"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Console palette. Adaptive colors keep the panels readable on light
// terminals too.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34d399"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	ColorBlue   = lipgloss.AdaptiveColor{Light: "#1d4ed8", Dark: "#60a5fa"}
	ColorPurple = lipgloss.AdaptiveColor{Light: "#6d28d9", Dark: "#a78bfa"}
	ColorDim    = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorFg     = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f3f4f6"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#4338ca", Dark: "#818cf8"}
)

func fg(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

// CommissionStyle returns the accent used for a commission policy.
func CommissionStyle(t domain.CommissionType) lipgloss.Style {
	switch t {
	case domain.CommissionFlat:
		return StyleBlue
	case domain.CommissionPercentage:
		return StyleGreen
	case domain.CommissionTiered:
		return StylePurple
	default:
		return StyleDim
	}
}

// OverrideMarker is the dot shown next to employees with individual settings.
func OverrideMarker(e domain.Employee) string {
	if e.HasOverride() {
		return StyleHeader.Render("●")
	}
	return " "
}

// InheritBadge renders the banner shown while an employee follows global.
func InheritBadge() string {
	return StyleYellow.Render("◆ Inheriting Global Baseline")
}

// Header upper-cases text and underlines it to its display width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return StyleHeader.Render(title) + "\n" + Dim(strings.Repeat("─", lipgloss.Width(title)))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
