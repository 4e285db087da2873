// Package metrics aggregates population state into per-tick records.
package metrics

import "floodadapt/internal/household"

// TickRecord is one row of the simulation time series.
type TickRecord struct {
	Tick       int `json:"tick" db:"tick"`
	Adapted    int `json:"adapted" db:"adapted"`
	Elevated   int `json:"elevated" db:"elevated"`
	Dryproofed int `json:"dryproofed" db:"dryproofed"`
	Wetproofed int `json:"wetproofed" db:"wetproofed"`

	TotalSavings          float64 `json:"total_savings" db:"total_savings"`
	MeanSavings           float64 `json:"mean_savings" db:"mean_savings"`
	TotalActualDamage     float64 `json:"total_actual_damage" db:"total_actual_damage"`
	TotalReducedActual    float64 `json:"total_reduced_actual_damage" db:"total_reduced_actual_damage"`
	TotalReducedEstimated float64 `json:"total_reduced_estimated_damage" db:"total_reduced_estimated_damage"`

	// Adoptions and Rebirths are lifetime counts, so they survive the
	// resets that make Adapted dip.
	Adoptions int `json:"adoptions" db:"adoptions"`
	Rebirths  int `json:"rebirths" db:"rebirths"`
}

// Aggregate summarizes the population as of the end of a tick.
func Aggregate(tick int, hs []*household.Household) TickRecord {
	rec := TickRecord{Tick: tick}
	for _, h := range hs {
		if h.IsAdapted {
			rec.Adapted++
		}
		if h.Measures[household.MeasureElevation].Active {
			rec.Elevated++
		}
		if h.Measures[household.MeasureDryproofing].Active {
			rec.Dryproofed++
		}
		if h.Measures[household.MeasureWetproofing].Active {
			rec.Wetproofed++
		}
		rec.TotalSavings += h.Savings
		rec.TotalActualDamage += h.ActualDamage
		rec.TotalReducedActual += h.ReducedActualDamage
		rec.TotalReducedEstimated += h.ReducedEstimatedDamage
		rec.Adoptions += h.Adoptions
		rec.Rebirths += h.Rebirths
	}
	if len(hs) > 0 {
		rec.MeanSavings = rec.TotalSavings / float64(len(hs))
	}
	return rec
}

// Collector accumulates one record per tick over a run.
type Collector struct {
	Records []TickRecord
}

// Observe appends the record for a completed tick.
func (c *Collector) Observe(rec TickRecord) {
	c.Records = append(c.Records, rec)
}

// Last returns the most recent record. It panics on an empty
// collector.
func (c *Collector) Last() TickRecord {
	return c.Records[len(c.Records)-1]
}
