package engine

import (
	"fmt"
	"log/slog"
)

// TicksPerYear is the number of simulation steps in one model year.
// One tick is a quarter.
const TicksPerYear = 4

// Runner drives a simulation through a fixed batch of ticks, flooding
// it on schedule.
type Runner struct {
	TotalTicks int

	// Callbacks populated during setup. OnTick fires after every
	// completed tick, shock included. OnShock fires right after a
	// flood lands.
	OnTick  func(tick int)
	OnShock func(tick int)

	// ProgressEvery controls how often the running state is logged.
	// Zero disables progress logging.
	ProgressEvery int

	shocks map[int]bool
}

// NewRunner schedules a run of totalTicks with floods at the given
// ticks. Shock ticks outside [1, totalTicks] never fire.
func NewRunner(totalTicks int, shockTicks []int) *Runner {
	shocks := make(map[int]bool, len(shockTicks))
	for _, t := range shockTicks {
		shocks[t] = true
	}
	return &Runner{TotalTicks: totalTicks, shocks: shocks}
}

// ShockAt reports whether a flood is scheduled for the given tick.
func (r *Runner) ShockAt(tick int) bool {
	return r.shocks[tick]
}

// Run advances the simulation tick by tick: household behavior first,
// then the flood if one is scheduled, then the observation callback.
func (r *Runner) Run(sim *Simulation) {
	slog.Info("run started",
		"ticks", r.TotalTicks,
		"shocks", len(r.shocks),
		"population", len(sim.Households),
		"scenario", sim.Scenario.Name,
	)

	for tick := 1; tick <= r.TotalTicks; tick++ {
		sim.StepHouseholds(tick)

		if r.shocks[tick] {
			sim.ApplyShock(tick)
			if r.OnShock != nil {
				r.OnShock(tick)
			}
		}

		if r.OnTick != nil {
			r.OnTick(tick)
		}

		if r.ProgressEvery > 0 && tick%r.ProgressEvery == 0 {
			slog.Info("run progress",
				"tick", tick,
				"quarter", QuarterLabel(tick),
				"adapted", sim.Stats.Adapted,
				"mean_savings", sim.Stats.MeanSavings,
				"rebirths", sim.Stats.Rebirths,
			)
		}
	}

	slog.Info("run finished",
		"tick", sim.LastTick,
		"adapted", sim.Stats.Adapted,
		"adoptions", sim.Stats.Adoptions,
		"total_damage", sim.Stats.TotalActualDamage,
	)
}

// QuarterLabel renders a tick as a human-readable model quarter,
// counting from y1q1.
func QuarterLabel(tick int) string {
	year := (tick-1)/TicksPerYear + 1
	quarter := (tick-1)%TicksPerYear + 1
	return fmt.Sprintf("y%dq%d", year, quarter)
}
