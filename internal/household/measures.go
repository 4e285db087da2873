// The protective-measure state machine handles adoption, the dryproof
// seal countdown, and the bookkeeping both do on the damage expectation.
package household

import "fmt"

// Adopt activates a measure: debits the effective cost, discounts the
// damage expectation by the measure's efficiency, and records the
// adoption. effectiveCost is the drawn cost after any subsidy. The
// avoided-damage accumulator is priced against savings before the debit.
func Adopt(h *Household, m MeasureKind, effectiveCost float64, p Params) {
	if h.Measures[m].Active {
		panic(fmt.Sprintf("household %d: adopt already-active measure %s", h.ID, m))
	}

	h.ReducedEstimatedDamage += h.Savings * h.DamageEstimated * p.Efficiency[m]
	h.Savings -= effectiveCost
	h.DamageEstimated *= 1 - p.Efficiency[m]

	h.Measures[m].Active = true
	if m == MeasureDryproofing {
		lifetime := p.DryproofLifetime
		h.Measures[m].Lifetime = &lifetime
	}
	h.Undergone = append(h.Undergone, m)
	h.IsAdapted = true
	h.Adoptions++
}

// TickExpiry counts down finite-lifetime measures and reverts any that
// lapse this quarter. It returns the kinds that expired so the caller
// can keep them out of the same tick's adoption choices: a measure may
// transition at most once per tick.
func TickExpiry(h *Household, p Params) []MeasureKind {
	var expired []MeasureKind
	for m := range h.Measures {
		st := &h.Measures[m]
		if !st.Active || st.Lifetime == nil {
			continue
		}
		*st.Lifetime--
		if *st.Lifetime > 0 {
			continue
		}
		expire(h, MeasureKind(m), p)
		expired = append(expired, MeasureKind(m))
	}
	return expired
}

// expire deactivates a measure and restores the damage expectation by the
// exact inverse of the adoption discount. Finite-lifetime measures have
// efficiency strictly below 1, so the division is sound.
func expire(h *Household, m MeasureKind, p Params) {
	if !h.Measures[m].Active {
		panic(fmt.Sprintf("household %d: expire inactive measure %s", h.ID, m))
	}

	h.DamageEstimated /= 1 - p.Efficiency[m]
	h.Measures[m] = MeasureStatus{}

	for i, u := range h.Undergone {
		if u == m {
			h.Undergone = append(h.Undergone[:i], h.Undergone[i+1:]...)
			break
		}
	}

	h.IsAdapted = false
	for _, st := range h.Measures {
		if st.Active {
			h.IsAdapted = true
			break
		}
	}
}

// ProtectionFactor is the multiplicative damage retention of the active
// measures in adoption order: realized damage = raw fraction × factor.
func (h *Household) ProtectionFactor(p Params) float64 {
	factor := 1.0
	for _, m := range h.Undergone {
		factor *= 1 - p.Efficiency[m]
	}
	return factor
}
