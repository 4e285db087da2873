// Package config loads, validates, and maps run settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"floodadapt/internal/household"
	"floodadapt/internal/network"
	"floodadapt/internal/risk"
)

// Config is the full set of settings for one simulation run.
type Config struct {
	Households int    `yaml:"households" json:"households"`
	Seed       int64  `yaml:"seed" json:"seed"`
	Ticks      int    `yaml:"ticks" json:"ticks"`
	ShockTicks []int  `yaml:"shock_ticks" json:"shock_ticks"`
	Scenario   string `yaml:"scenario" json:"scenario"`

	SavingThreshold float64        `yaml:"saving_threshold" json:"saving_threshold"`
	Income          IncomeConfig   `yaml:"income" json:"income"`
	Measures        MeasuresConfig `yaml:"measures" json:"measures"`
	Network         NetworkConfig  `yaml:"network" json:"network"`
	Subsidy         SubsidyConfig  `yaml:"subsidy" json:"subsidy"`

	// Database is where finished runs are stored. Empty disables
	// persistence.
	Database string `yaml:"database" json:"database"`
}

// IncomeConfig parameterizes the gamma draw behind household incomes.
type IncomeConfig struct {
	Shape float64 `yaml:"shape" json:"shape"`
	Scale float64 `yaml:"scale" json:"scale"`
}

// MeasuresConfig holds the per-measure cost and effectiveness knobs.
type MeasuresConfig struct {
	Elevation   MeasureConfig `yaml:"elevation" json:"elevation"`
	Dryproofing MeasureConfig `yaml:"dryproofing" json:"dryproofing"`
	Wetproofing MeasureConfig `yaml:"wetproofing" json:"wetproofing"`
}

// MeasureConfig describes one adaptation measure. Costs are drawn per
// household from [CostMin, CostMax). Lifetime is in ticks and only
// dryproofing supports one; zero means the measure never expires.
type MeasureConfig struct {
	CostMin    float64 `yaml:"cost_min" json:"cost_min"`
	CostMax    float64 `yaml:"cost_max" json:"cost_max"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
	Lifetime   int     `yaml:"lifetime" json:"lifetime"`
}

// NetworkConfig selects and parameterizes the social graph.
type NetworkConfig struct {
	Topology              string  `yaml:"topology" json:"topology"`
	ConnectionProbability float64 `yaml:"connection_probability" json:"connection_probability"`
	AttachmentEdges       int     `yaml:"attachment_edges" json:"attachment_edges"`
	NearestNeighbours     int     `yaml:"nearest_neighbours" json:"nearest_neighbours"`
}

// SubsidyConfig sets the flat discount on measure costs. Zero disables
// the program.
type SubsidyConfig struct {
	Rate float64 `yaml:"rate" json:"rate"`
}

// Default returns the stock configuration: a Harvey-scenario run of 25
// households over 50 years with three floods.
func Default() Config {
	return Config{
		Households: 25,
		Seed:       42,
		Ticks:      200,
		ShockTicks: []int{20, 80, 200},
		Scenario:   "harvey",

		SavingThreshold: 0.5,
		Income:          IncomeConfig{Shape: 2.0, Scale: 5000},
		Measures: MeasuresConfig{
			Elevation:   MeasureConfig{CostMin: 30000, CostMax: 40000, Efficiency: 1.0},
			Dryproofing: MeasureConfig{CostMin: 5500, CostMax: 6500, Efficiency: 0.5, Lifetime: 80},
			Wetproofing: MeasureConfig{CostMin: 6500, CostMax: 8000, Efficiency: 0.4},
		},
		Network: NetworkConfig{
			Topology:              string(network.NoNetwork),
			ConnectionProbability: 0.4,
			AttachmentEdges:       3,
			NearestNeighbours:     5,
		},
	}
}

// Load reads a YAML file over the defaults, so a partial file only
// overrides the settings it names.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the model cannot run with.
func (c *Config) Validate() error {
	if c.Households <= 0 {
		return fmt.Errorf("households must be positive, got %d", c.Households)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	for _, tick := range c.ShockTicks {
		if tick < 1 || tick > c.Ticks {
			return fmt.Errorf("shock tick %d outside run range [1,%d]", tick, c.Ticks)
		}
	}
	if _, err := risk.ParseScenario(c.Scenario); err != nil {
		return err
	}
	if _, err := network.ParseTopology(c.Network.Topology); err != nil {
		return err
	}
	if c.SavingThreshold < 0 || c.SavingThreshold > 1 {
		return fmt.Errorf("saving_threshold must be in [0,1], got %g", c.SavingThreshold)
	}
	if c.Subsidy.Rate < 0 || c.Subsidy.Rate > 1 {
		return fmt.Errorf("subsidy.rate must be in [0,1], got %g", c.Subsidy.Rate)
	}
	if c.Income.Shape <= 0 || c.Income.Scale <= 0 {
		return fmt.Errorf("income shape and scale must be positive, got shape=%g scale=%g",
			c.Income.Shape, c.Income.Scale)
	}

	for _, m := range []struct {
		name string
		cfg  MeasureConfig
	}{
		{"elevation", c.Measures.Elevation},
		{"dryproofing", c.Measures.Dryproofing},
		{"wetproofing", c.Measures.Wetproofing},
	} {
		if m.cfg.CostMin < 0 || m.cfg.CostMax < m.cfg.CostMin {
			return fmt.Errorf("measures.%s: cost range [%g,%g] invalid", m.name, m.cfg.CostMin, m.cfg.CostMax)
		}
		if m.cfg.Efficiency < 0 || m.cfg.Efficiency > 1 {
			return fmt.Errorf("measures.%s: efficiency %g outside [0,1]", m.name, m.cfg.Efficiency)
		}
	}
	if c.Measures.Dryproofing.Lifetime <= 0 {
		return fmt.Errorf("measures.dryproofing.lifetime must be positive, got %d", c.Measures.Dryproofing.Lifetime)
	}
	if c.Measures.Dryproofing.Efficiency >= 1 {
		return fmt.Errorf("measures.dryproofing.efficiency must be below 1, got %g", c.Measures.Dryproofing.Efficiency)
	}
	if c.Measures.Elevation.Lifetime != 0 || c.Measures.Wetproofing.Lifetime != 0 {
		return fmt.Errorf("only dryproofing supports a lifetime")
	}
	return nil
}

// HouseholdParams maps the config onto the household behavior knobs.
func (c *Config) HouseholdParams() household.Params {
	p := household.DefaultParams()
	p.IncomeShape = c.Income.Shape
	p.IncomeScale = c.Income.Scale
	p.SavingThreshold = c.SavingThreshold
	p.CostMin = [household.NumMeasures]float64{
		household.MeasureElevation:   c.Measures.Elevation.CostMin,
		household.MeasureDryproofing: c.Measures.Dryproofing.CostMin,
		household.MeasureWetproofing: c.Measures.Wetproofing.CostMin,
	}
	p.CostMax = [household.NumMeasures]float64{
		household.MeasureElevation:   c.Measures.Elevation.CostMax,
		household.MeasureDryproofing: c.Measures.Dryproofing.CostMax,
		household.MeasureWetproofing: c.Measures.Wetproofing.CostMax,
	}
	p.Efficiency = [household.NumMeasures]float64{
		household.MeasureElevation:   c.Measures.Elevation.Efficiency,
		household.MeasureDryproofing: c.Measures.Dryproofing.Efficiency,
		household.MeasureWetproofing: c.Measures.Wetproofing.Efficiency,
	}
	p.DryproofLifetime = c.Measures.Dryproofing.Lifetime
	return p
}

// NetworkParams maps the config onto the graph builder knobs.
func (c *Config) NetworkParams() network.Params {
	return network.Params{
		ConnectionProbability: c.Network.ConnectionProbability,
		AttachmentEdges:       c.Network.AttachmentEdges,
		NearestNeighbours:     c.Network.NearestNeighbours,
	}
}
