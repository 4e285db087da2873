package main

import (
	"github.com/spf13/cobra"

	"floodadapt/internal/persistence"
)

func reportCmd() *cobra.Command {
	var dbPath, runID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a stored run",
		RunE: func(*cobra.Command, []string) error {
			return runReport(dbPath, runID)
		},
	}

	cmd.Flags().StringVar(&dbPath, "database", "floodadapt.db", "results database path")
	cmd.Flags().StringVar(&runID, "run", "", "run ID (defaults to the most recent run)")
	return cmd
}

func runReport(dbPath, runID string) error {
	db, err := persistence.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if runID == "" {
		runID, err = db.LatestRunID()
		if err != nil {
			return err
		}
	}

	meta, err := db.LoadRun(runID)
	if err != nil {
		return err
	}
	records, err := db.LoadTickMetrics(runID)
	if err != nil {
		return err
	}
	top, err := db.TopDamaged(runID, 5)
	if err != nil {
		return err
	}

	printReport(meta, records, top)
	return nil
}
