// Storm scenarios couple per-quarter flood odds with the shaping
// parameters of the synthetic depth field.
package risk

import "fmt"

// Scenario identifies the hazard regime a run is configured under.
type Scenario struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"` // Per-quarter chance of a flood event
	DepthScale  float64 `json:"depth_scale"` // Vertical exaggeration of the depth field
	WaterLevel  float64 `json:"water_level"` // Normalized flood stage in [0, 1]
}

// The three calibrated regimes. Probabilities are per quarter.
var scenarios = map[string]Scenario{
	"harvey": {Name: "harvey", Probability: 0.07, DepthScale: 3.0, WaterLevel: 0.55},
	"100yr":  {Name: "100yr", Probability: 0.01, DepthScale: 1.8, WaterLevel: 0.45},
	"500yr":  {Name: "500yr", Probability: 0.002, DepthScale: 2.4, WaterLevel: 0.50},
}

// ParseScenario resolves a scenario name from configuration. Unknown names
// fail immediately so a typo cannot silently run a different storm than
// the one asked for.
func ParseScenario(name string) (Scenario, error) {
	sc, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q (valid: harvey, 100yr, 500yr)", name)
	}
	return sc, nil
}

// Names returns the valid scenario names in display order.
func Names() []string {
	return []string{"harvey", "100yr", "500yr"}
}
