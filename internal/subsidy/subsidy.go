// Package subsidy prices adaptation measures for households. Providers
// quote a cost multiplier in [0,1], where 1 is full price.
package subsidy

import "floodadapt/internal/household"

// None charges every household full price.
type None struct{}

// Multiplier implements household.CostMultiplier.
func (None) Multiplier(int, household.MeasureKind) float64 { return 1 }

// FixedRate discounts every measure for every household by the same
// fraction of its cost.
type FixedRate struct {
	Rate float64
}

// Multiplier implements household.CostMultiplier.
func (f FixedRate) Multiplier(int, household.MeasureKind) float64 {
	rate := f.Rate
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return 1 - rate
}

// ForRate picks the provider for a configured subsidy rate. Zero means
// no subsidy program.
func ForRate(rate float64) household.CostMultiplier {
	if rate == 0 {
		return None{}
	}
	return FixedRate{Rate: rate}
}
