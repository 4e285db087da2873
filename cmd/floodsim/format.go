package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"floodadapt/internal/config"
	"floodadapt/internal/engine"
	"floodadapt/internal/metrics"
	"floodadapt/internal/persistence"
)

func money(v float64) string {
	return humanize.CommafWithDigits(v, 0)
}

func printSummary(cfg config.Config, last metrics.TickRecord) {
	fmt.Println()
	fmt.Printf("Run complete: %d households, %d ticks (%s), scenario %s\n",
		cfg.Households, cfg.Ticks, engine.QuarterLabel(cfg.Ticks), cfg.Scenario)
	fmt.Printf("  adapted:            %d (%d elevated, %d dryproofed, %d wetproofed)\n",
		last.Adapted, last.Elevated, last.Dryproofed, last.Wetproofed)
	fmt.Printf("  lifetime adoptions: %d across %d rebirths\n", last.Adoptions, last.Rebirths)
	fmt.Printf("  savings:            total %s, mean %s\n",
		money(last.TotalSavings), money(last.MeanSavings))
	fmt.Printf("  flood losses:       %s realized, %s avoided\n",
		money(last.TotalActualDamage), money(last.TotalReducedActual))
}

func printReport(meta persistence.RunMeta, records []metrics.TickRecord, top []persistence.HouseholdRow) {
	fmt.Printf("Run %s (%s)\n", meta.ID, meta.CreatedAt)
	fmt.Printf("  %d households, %d ticks, scenario %s, network %s, seed %d\n",
		meta.Households, meta.Ticks, meta.Scenario, meta.Network, meta.Seed)

	if len(records) > 0 {
		last := records[len(records)-1]
		fmt.Printf("  final adapted %d of %d, losses %s realized, %s avoided\n",
			last.Adapted, meta.Households, money(last.TotalActualDamage), money(last.TotalReducedActual))
	}

	if len(top) > 0 {
		fmt.Println()
		fmt.Println("Hardest-hit households:")
		for _, row := range top {
			fmt.Printf("  #%-4d losses %12s   savings %12s   adapted=%v\n",
				row.ID, money(row.ActualDamage), money(row.Savings), row.IsAdapted == 1)
		}
	}
}
