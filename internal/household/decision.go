// The adaptation rule is a log-utility comparison of staying
// unprotected against each affordable inactive measure.
package household

import "math"

// utilityEpsilon keeps the log utilities finite when a branch would
// otherwise evaluate at exactly zero wealth.
const utilityEpsilon = 1e-10

// CostMultiplier quotes the fraction of a measure's drawn cost a
// household actually pays; 1 means full price. Implementations supply
// subsidy policy without the decision rule knowing about it.
type CostMultiplier interface {
	Multiplier(householdID int, m MeasureKind) float64
}

// Decision is the outcome of one expected-utility evaluation.
type Decision struct {
	Adopt   bool
	Measure MeasureKind
	Cost    float64 // Effective (post-subsidy) cost of the chosen measure
	Utility float64
}

// Decide evaluates the household's quarterly adaptation choice. Inactive
// measures compete against doing nothing; blocked entries are measures
// that already transitioned this tick and sit the round out. A nil
// subsidy means full price everywhere.
//
// A measure is affordable when savings cover its cost plus the damage
// still expected after it is in place. Among affordable measures the
// highest expected utility wins; ties resolve toward the earlier entry
// in the fixed order, and a measure beats no-action on an exact tie.
func Decide(h *Household, blocked [NumMeasures]bool, subsidy CostMultiplier, p Params) Decision {
	s := h.Savings
	d := h.DamageEstimated
	prob := h.FloodProbability

	if s <= 0 {
		// Nothing is affordable from an empty account, and the log
		// utilities are only well-defined for positive savings.
		return Decision{}
	}

	euNone := prob*math.Log(s-s*d+utilityEpsilon) +
		(1-prob)*math.Log(s+utilityEpsilon)
	best := Decision{Utility: euNone}

	for _, m := range decisionOrder {
		if h.Measures[m].Active || blocked[m] {
			continue
		}

		cost := h.MeasureCosts[m]
		if subsidy != nil {
			cost *= subsidy.Multiplier(h.ID, m)
		}

		residual := s * d * (1 - p.Efficiency[m])
		if s < cost+residual {
			continue
		}

		eu := prob*math.Log(s-residual-cost+utilityEpsilon) +
			(1-prob)*math.Log(s-cost+utilityEpsilon)

		if !best.Adopt {
			if eu >= best.Utility {
				best = Decision{Adopt: true, Measure: m, Cost: cost, Utility: eu}
			}
		} else if eu > best.Utility {
			best = Decision{Adopt: true, Measure: m, Cost: cost, Utility: eu}
		}
	}

	return best
}
