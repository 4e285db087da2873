// Simulation ties the household population, hazard exposure, and
// social network together and advances them each tick.
package engine

import (
	"log/slog"
	"math/rand"

	"floodadapt/internal/household"
	"floodadapt/internal/metrics"
	"floodadapt/internal/network"
	"floodadapt/internal/risk"
)

// Simulation holds the complete model state for one run.
type Simulation struct {
	Households []*household.Household
	Index      map[int]*household.Household
	Net        *network.Network
	Scenario   risk.Scenario
	Params     household.Params

	// Subsidy prices measures for the decision rule. Nil means full
	// price everywhere.
	Subsidy household.CostMultiplier

	// LastTick is the most recent tick processed.
	LastTick int

	// Stats reflects the population as of the end of LastTick,
	// shocks included.
	Stats metrics.TickRecord

	// rng drives lifecycle draws, activation order, and shock
	// severity. One source per run keeps runs reproducible.
	rng *rand.Rand
}

// NewSimulation wires a spawned population into a runnable model.
// Friend counts are taken from the network at construction time; the
// graph does not change over a run.
func NewSimulation(hs []*household.Household, net *network.Network, sc risk.Scenario, p household.Params, sub household.CostMultiplier, seed int64) *Simulation {
	index := make(map[int]*household.Household, len(hs))
	for _, h := range hs {
		index[h.ID] = h
		h.Friends = net.NeighborCount(h.ID, 1)
	}

	sim := &Simulation{
		Households: hs,
		Index:      index,
		Net:        net,
		Scenario:   sc,
		Params:     p,
		Subsidy:    sub,
		rng:        rand.New(rand.NewSource(seed)),
	}
	sim.updateStats()
	return sim
}

// CurrentTick returns the most recently processed tick number.
func (s *Simulation) CurrentTick() int {
	return s.LastTick
}

// StepHouseholds runs one tick of household behavior: finances age
// forward, expired measures lapse, and each household weighs the
// remaining measures against doing nothing. Households act in a fresh
// random order every tick so that no one is structurally first.
func (s *Simulation) StepHouseholds(tick int) {
	s.LastTick = tick
	for _, i := range s.rng.Perm(len(s.Households)) {
		h := s.Households[i]

		household.StepFinances(h, s.rng, s.Params)

		// A measure that lapsed this tick cannot be re-adopted until
		// the next one.
		var blocked [household.NumMeasures]bool
		for _, m := range household.TickExpiry(h, s.Params) {
			blocked[m] = true
		}

		dec := household.Decide(h, blocked, s.Subsidy, s.Params)
		if dec.Adopt {
			household.Adopt(h, dec.Measure, dec.Cost, s.Params)
			slog.Debug("measure adopted",
				"tick", tick,
				"household", h.ID,
				"measure", dec.Measure.String(),
				"cost", dec.Cost,
				"savings", h.Savings,
			)
		}
	}
	s.updateStats()
}

func (s *Simulation) updateStats() {
	s.Stats = metrics.Aggregate(s.LastTick, s.Households)
}
