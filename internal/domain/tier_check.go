package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TierIssueKind classifies a tier range problem.
type TierIssueKind string

const (
	TierInverted TierIssueKind = "inverted"
	TierOverlap  TierIssueKind = "overlap"
	TierGap      TierIssueKind = "gap"
)

// TierIssue is an advisory finding about a tier list. Issues never block
// editing; they are only shown to the user.
type TierIssue struct {
	Kind   TierIssueKind
	Index  int // 0-based position of the offending tier
	TierID string
}

func (i TierIssue) String() string {
	row := i.Index + 1
	switch i.Kind {
	case TierInverted:
		return fmt.Sprintf("tier %d: range ends before it starts", row)
	case TierOverlap:
		return fmt.Sprintf("tier %d: overlaps tier %d", row, row-1)
	case TierGap:
		return fmt.Sprintf("tier %d: gap after tier %d", row, row-1)
	}
	return fmt.Sprintf("tier %d: %s", row, i.Kind)
}

// CheckTiers reports inverted ranges and, comparing each tier with the one
// before it, overlaps and gaps. Tiers are expected in ascending order; a tier
// that starts at or before its predecessor's upper bound overlaps it, one that
// starts more than one unit past it leaves a gap.
func CheckTiers(tiers []CommissionTier) []TierIssue {
	var issues []TierIssue
	one := decimal.NewFromInt(1)
	for i, t := range tiers {
		if t.From.GreaterThan(t.To) {
			issues = append(issues, TierIssue{Kind: TierInverted, Index: i, TierID: t.ID})
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		switch {
		case t.From.LessThanOrEqual(prev.To):
			issues = append(issues, TierIssue{Kind: TierOverlap, Index: i, TierID: t.ID})
		case t.From.GreaterThan(prev.To.Add(one)):
			issues = append(issues, TierIssue{Kind: TierGap, Index: i, TierID: t.ID})
		}
	}
	return issues
}
