package cli

import (
	"testing"

	"github.com/alexanderramin/logisales/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierInput_ChangesInFormOrder(t *testing.T) {
	tier := domain.CommissionTier{
		ID:   "t1",
		From: decimal.Zero,
		To:   decimal.NewFromInt(5000),
		Rate: decimal.NewFromInt(150),
		Type: domain.TierFlat,
	}

	in := newTierInput(tier)
	assert.Equal(t, "0", in.From)
	assert.Equal(t, "5000", in.To)
	assert.Equal(t, "150", in.Rate)
	assert.Empty(t, in.changes(tier))

	in.Rate = "2.5"
	in.Type = domain.TierPercentage
	in.From = "1"
	assert.Equal(t, []tierChange{
		{domain.TierFieldFrom, "1"},
		{domain.TierFieldType, "PERCENTAGE"},
		{domain.TierFieldRate, "2.5"},
	}, in.changes(tier))
}

func TestFormValidators_RejectHugeExponents(t *testing.T) {
	assert.NoError(t, validateAmount("750,000"))
	assert.NoError(t, validateCount("6000"))

	assert.Error(t, validateAmount("1e2000000"))
	assert.Error(t, validateCount("1e300000000"))
	assert.Error(t, validateCount("2.5"))
}
