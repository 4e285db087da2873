// The financial lifecycle covers quarterly aging, stochastic saving and
// consumption, and generational turnover of the dwelling.
package household

import (
	"math/rand"

	"floodadapt/internal/risk"
)

// lifecycleRates is the grid households draw their quarterly saving and
// consumption propensities from.
var lifecycleRates = [...]float64{0.05, 0.10, 0.15, 0.20, 0.25}

// StepFinances advances one household by one quarter: ages it, applies
// the stochastic saving/consumption update, and hands the dwelling to
// the next generation once the resident reaches MaxAge. Both rates are
// drawn every quarter regardless of which branch applies.
func StepFinances(h *Household, rng *rand.Rand, p Params) {
	h.Age += TickYears

	consumptionRate := lifecycleRates[rng.Intn(len(lifecycleRates))]
	savingRate := lifecycleRates[rng.Intn(len(lifecycleRates))]

	if rng.Float64() > p.SavingThreshold {
		h.Savings += h.Income * savingRate * 3 // three months of saving per quarter
	} else {
		h.Savings -= h.Savings * consumptionRate
	}

	if h.Age >= MaxAge {
		rebirth(h, rng, p)
	}
}

// rebirth re-draws demographics for the next resident of the dwelling.
// ID, location, drawn measure costs, and the lifetime accumulators
// persist; all protection lapses with the previous owner, so the damage
// expectation reverts to the raw curve value.
func rebirth(h *Household, rng *rand.Rand, p Params) {
	h.Age = drawAdultAge(rng)
	h.Income = drawIncome(rng, p)
	h.Savings = drawSavingsMultiplier(rng) * h.Income

	for m := range h.Measures {
		h.Measures[m] = MeasureStatus{}
	}
	h.Undergone = nil
	h.IsAdapted = false
	h.DamageEstimated = risk.DamageFraction(h.DepthEstimated)
	h.Rebirths++
}
