// Spawning creates the initial population with its demographics, flood
// expectations, and per-household measure costs.
package household

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"floodadapt/internal/hazard"
	"floodadapt/internal/risk"
)

// Spawner creates households for a run.
type Spawner struct {
	rng      *rand.Rand
	field    *hazard.Field
	scenario risk.Scenario
	params   Params
	nextID   int
}

// NewSpawner creates a household spawner with the given seed.
func NewSpawner(seed int64, field *hazard.Field, sc risk.Scenario, p Params) *Spawner {
	return &Spawner{
		rng:      rand.New(rand.NewSource(seed + 300)),
		field:    field,
		scenario: sc,
		params:   p,
		nextID:   1,
	}
}

// SpawnPopulation creates a batch of households with sequential IDs.
func (s *Spawner) SpawnPopulation(count int) []*Household {
	hs := make([]*Household, 0, count)
	for i := 0; i < count; i++ {
		hs = append(hs, s.spawnOne())
	}
	return hs
}

func (s *Spawner) spawnOne() *Household {
	id := s.nextID
	s.nextID++

	loc := hazard.RandomLocation(s.rng)
	depth := s.field.DepthAt(loc)

	income := drawIncome(s.rng, s.params)

	h := &Household{
		ID:               id,
		Age:              drawAdultAge(s.rng),
		Income:           income,
		Savings:          drawSavingsMultiplier(s.rng) * income,
		Location:         loc,
		InFloodplain:     depth > 0,
		FloodProbability: s.scenario.Probability,
		DepthEstimated:   depth,
		DamageEstimated:  risk.DamageFraction(depth),
	}

	for m := range h.MeasureCosts {
		span := int(s.params.CostMax[m] - s.params.CostMin[m])
		cost := s.params.CostMin[m]
		if span > 0 {
			cost += float64(s.rng.Intn(span))
		}
		h.MeasureCosts[m] = cost
	}

	return h
}

// drawIncome samples annual income from the configured Gamma distribution,
// re-drawing until it lands inside the accepted band, then truncating to
// whole dollars.
func drawIncome(rng *rand.Rand, p Params) float64 {
	dist := distuv.Gamma{Alpha: p.IncomeShape, Beta: 1 / p.IncomeScale, Src: rng}
	for {
		v := dist.Rand()
		if v >= IncomeMin && v <= IncomeMax {
			return math.Trunc(v)
		}
	}
}

// drawAdultAge returns a uniform adult age in [20, 79].
func drawAdultAge(rng *rand.Rand) float64 {
	return float64(20 + rng.Intn(60))
}

// drawSavingsMultiplier returns the 1–5 years of income a household
// starts out (or restarts) with.
func drawSavingsMultiplier(rng *rand.Rand) float64 {
	return float64(1 + rng.Intn(5))
}
