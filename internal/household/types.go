// Package household provides the household data model, the quarterly
// financial lifecycle, the protective-measure state machine, and the
// expected-utility adaptation rule.
package household

import (
	"floodadapt/internal/hazard"
)

// MeasureKind enumerates the structural protection measures a household
// can take against flooding.
type MeasureKind uint8

const (
	MeasureElevation MeasureKind = iota
	MeasureDryproofing
	MeasureWetproofing
)

// NumMeasures is the total number of measure kinds.
const NumMeasures = 3

func (m MeasureKind) String() string {
	switch m {
	case MeasureElevation:
		return "elevation"
	case MeasureDryproofing:
		return "dryproofing"
	case MeasureWetproofing:
		return "wetproofing"
	default:
		return "unknown"
	}
}

// decisionOrder fixes how expected-utility ties resolve: earlier entries
// win, and any measure beats staying unprotected on an exact tie.
var decisionOrder = [NumMeasures]MeasureKind{
	MeasureElevation,
	MeasureDryproofing,
	MeasureWetproofing,
}

// MeasureStatus is the per-measure activation state. Lifetime is the
// remaining quarters before an active measure lapses; nil means the
// measure never expires. Only dryproofing carries a lifetime.
type MeasureStatus struct {
	Active   bool `json:"active"`
	Lifetime *int `json:"lifetime,omitempty"`
}

// Age and tick constants. One tick is a quarter of a year.
const (
	MaxAge    = 80.0
	TickYears = 0.25
)

// Income draws are re-sampled into this band before truncation.
const (
	IncomeMin = 1000.0
	IncomeMax = 50000.0
)

// Household is the core entity of the simulation.
type Household struct {
	ID int `json:"id"`

	// Demographics
	Age     float64 `json:"age"`    // Years; ticks advance it a quarter at a time
	Income  float64 `json:"income"` // Annual income, whole dollars
	Savings float64 `json:"savings"`

	// Location and exposure. The location and the estimated depth are
	// fixed for the life of the dwelling.
	Location         hazard.Point `json:"location"`
	InFloodplain     bool         `json:"in_floodplain"`
	FloodProbability float64      `json:"flood_probability"` // Per-quarter event odds

	// Expectations and realizations. DamageEstimated is a fraction and
	// shrinks as measures are adopted; the actual pair holds the most
	// recent flood event, zero before the first one.
	DepthEstimated  float64 `json:"flood_depth_estimated"`
	DamageEstimated float64 `json:"flood_damage_estimated"`
	DepthActual     float64 `json:"flood_depth_actual"`
	DamageActual    float64 `json:"flood_damage_actual"` // Post-protection fraction

	// Adaptation state. Undergone lists the active measures in adoption
	// order; the state machine keeps it in sync with Measures.
	Measures  [NumMeasures]MeasureStatus `json:"measures"`
	Undergone []MeasureKind              `json:"measures_undergone"`
	IsAdapted bool                       `json:"is_adapted"`

	// One-time measure costs, drawn per household at construction.
	MeasureCosts [NumMeasures]float64 `json:"measure_costs"`

	// Lifetime accumulators in dollars. They survive rebirth.
	ActualDamage           float64 `json:"actual_damage"`
	ReducedActualDamage    float64 `json:"reduced_actual_damage"`
	ReducedEstimatedDamage float64 `json:"reduced_estimated_damage"`

	// Lifetime counters.
	Adoptions int `json:"adoptions"`
	Rebirths  int `json:"rebirths"`

	// Friends is the 1-hop neighbor count on the social scaffold,
	// zero when the run has no network.
	Friends int `json:"friends"`
}

// Params bundles the population-level constants a run is configured with.
type Params struct {
	IncomeShape     float64
	IncomeScale     float64
	SavingThreshold float64

	CostMin    [NumMeasures]float64
	CostMax    [NumMeasures]float64
	Efficiency [NumMeasures]float64

	// DryproofLifetime is the number of quarters a dryproofing seal
	// holds before it fails.
	DryproofLifetime int
}

// DefaultParams returns the calibrated baseline parameters.
func DefaultParams() Params {
	return Params{
		IncomeShape:      2.0,
		IncomeScale:      5000.0,
		SavingThreshold:  0.5,
		CostMin:          [NumMeasures]float64{30000, 5500, 6500},
		CostMax:          [NumMeasures]float64{40000, 6500, 8000},
		Efficiency:       [NumMeasures]float64{1.0, 0.5, 0.4},
		DryproofLifetime: 80,
	}
}
