// Command floodsim runs the household flood adaptation simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var quiet bool

	rootCmd := &cobra.Command{
		Use:   "floodsim",
		Short: "Agent-based simulation of household flood adaptation",
		PersistentPreRun: func(*cobra.Command, []string) {
			level := slog.LevelInfo
			if quiet {
				level = slog.LevelWarn
			}
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "only log warnings and errors")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config.yaml]",
		Short: "Check a config file without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig(configArg(args))
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Printf("Config OK: %d households, %d ticks, scenario %s, network %s\n",
				cfg.Households, cfg.Ticks, cfg.Scenario, cfg.Network.Topology)
			return nil
		},
	}
}
