package enums

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier is the pricing/reach plan a partner subscribes to.
type Tier string

const (
	TierDFW        Tier = "dfw"
	TierStatewide  Tier = "statewide"
	TierNationwide Tier = "nationwide"
)

var validTiers = []Tier{
	TierDFW,
	TierStatewide,
	TierNationwide,
}

var monthlyFeeByTier = map[Tier]int64{
	TierDFW:        160,
	TierStatewide:  320,
	TierNationwide: 640,
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether the value is a known Tier.
func (t Tier) IsValid() bool {
	for _, candidate := range validTiers {
		if candidate == t {
			return true
		}
	}
	return false
}

// MonthlyFee returns the USD monthly fee for the tier. Unrecognized tiers
// fall back to the DFW price.
func (t Tier) MonthlyFee() decimal.Decimal {
	if fee, ok := monthlyFeeByTier[t]; ok {
		return decimal.NewFromInt(fee)
	}
	return decimal.NewFromInt(monthlyFeeByTier[TierDFW])
}

// ParseTier converts raw input into a Tier.
func ParseTier(value string) (Tier, error) {
	for _, candidate := range validTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier %q", value)
}
