package engine

import (
	"log/slog"

	"floodadapt/internal/risk"
)

// Realized flood depth varies around the estimate household by
// household.
const (
	shockFactorMin = 0.5
	shockFactorMax = 1.2
)

// ApplyShock floods every household at once. Each household realizes a
// depth between 0.5x and 1.2x its estimate, active measures absorb
// their share of the raw damage fraction, and the residual fraction is
// taken out of positive savings. Negative balances have nothing left
// to lose.
func (s *Simulation) ApplyShock(tick int) {
	flooded := 0
	losses := 0.0

	for _, h := range s.Households {
		factor := shockFactorMin + s.rng.Float64()*(shockFactorMax-shockFactorMin)
		h.DepthActual = factor * h.DepthEstimated

		raw := risk.DamageFraction(h.DepthActual)
		residual := raw * h.ProtectionFactor(s.Params)
		h.DamageActual = residual

		exposed := h.Savings
		if exposed < 0 {
			exposed = 0
		}
		loss := residual * exposed
		h.ActualDamage += loss
		h.ReducedActualDamage += (raw - residual) * exposed
		h.Savings -= loss

		if raw > 0 {
			flooded++
		}
		losses += loss
	}

	s.updateStats()
	slog.Info("flood shock",
		"tick", tick,
		"flooded", flooded,
		"population", len(s.Households),
		"losses", losses,
		"adapted", s.Stats.Adapted,
	)
}
