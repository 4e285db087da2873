package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"floodadapt/internal/config"
	"floodadapt/internal/engine"
	"floodadapt/internal/hazard"
	"floodadapt/internal/household"
	"floodadapt/internal/metrics"
	"floodadapt/internal/network"
	"floodadapt/internal/persistence"
	"floodadapt/internal/risk"
	"floodadapt/internal/subsidy"
)

type runOptions struct {
	seed       int64
	ticks      int
	households int
	scenario   string
	topology   string
	database   string
}

func runCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [config.yaml]",
		Short: "Run a simulation and optionally store the results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configArg(args))
			if err != nil {
				return err
			}
			applyOverrides(cmd, &cfg, opts)
			return runSimulation(cfg)
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "override the run seed")
	cmd.Flags().IntVar(&opts.ticks, "ticks", 0, "override the number of ticks")
	cmd.Flags().IntVar(&opts.households, "households", 0, "override the population size")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "override the flood scenario")
	cmd.Flags().StringVar(&opts.topology, "network", "", "override the network topology")
	cmd.Flags().StringVar(&opts.database, "database", "", "override the results database path")
	return cmd
}

func configArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config, opts runOptions) {
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.seed
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = opts.ticks
	}
	if cmd.Flags().Changed("households") {
		cfg.Households = opts.households
	}
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = opts.scenario
	}
	if cmd.Flags().Changed("network") {
		cfg.Network.Topology = opts.topology
	}
	if cmd.Flags().Changed("database") {
		cfg.Database = opts.database
	}
}

func buildSimulation(cfg config.Config) (*engine.Simulation, error) {
	sc, err := risk.ParseScenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	topology, err := network.ParseTopology(cfg.Network.Topology)
	if err != nil {
		return nil, err
	}

	params := cfg.HouseholdParams()
	field := hazard.NewField(cfg.Seed+1, sc.DepthScale, sc.WaterLevel)
	hs := household.NewSpawner(cfg.Seed, field, sc, params).SpawnPopulation(cfg.Households)

	net, err := network.Build(topology, cfg.Households, cfg.NetworkParams(), cfg.Seed)
	if err != nil {
		return nil, err
	}

	return engine.NewSimulation(hs, net, sc, params, subsidy.ForRate(cfg.Subsidy.Rate), cfg.Seed), nil
}

func runSimulation(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	sim, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	inFloodplain := 0
	for _, h := range sim.Households {
		if h.InFloodplain {
			inFloodplain++
		}
	}
	slog.Info("population ready",
		"households", len(sim.Households),
		"in_floodplain", inFloodplain,
		"scenario", sim.Scenario.Name,
		"network", sim.Net.Kind(),
		"edges", sim.Net.EdgeCount(),
	)

	var col metrics.Collector
	runner := engine.NewRunner(cfg.Ticks, cfg.ShockTicks)
	runner.ProgressEvery = 40
	runner.OnTick = func(int) { col.Observe(sim.Stats) }
	runner.Run(sim)

	printSummary(cfg, col.Last())

	if cfg.Database != "" {
		if err := saveRun(cfg, sim, col.Records); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}
	return nil
}

func saveRun(cfg config.Config, sim *engine.Simulation, records []metrics.TickRecord) error {
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	id, err := db.SaveRun(persistence.RunMeta{
		Seed:       cfg.Seed,
		Households: cfg.Households,
		Ticks:      cfg.Ticks,
		Scenario:   cfg.Scenario,
		Network:    cfg.Network.Topology,
		ConfigJSON: string(cfgJSON),
	}, records, sim.Households)
	if err != nil {
		return err
	}

	fmt.Printf("Results stored: run %s in %s\n", id, cfg.Database)
	return nil
}
