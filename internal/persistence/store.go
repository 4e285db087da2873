// Package persistence stores finished simulation runs in SQLite for
// later reporting.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"floodadapt/internal/household"
	"floodadapt/internal/metrics"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		households INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		network TEXT NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tick_metrics (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		adapted INTEGER NOT NULL,
		elevated INTEGER NOT NULL,
		dryproofed INTEGER NOT NULL,
		wetproofed INTEGER NOT NULL,
		total_savings REAL NOT NULL,
		mean_savings REAL NOT NULL,
		total_actual_damage REAL NOT NULL,
		total_reduced_actual_damage REAL NOT NULL,
		total_reduced_estimated_damage REAL NOT NULL,
		adoptions INTEGER NOT NULL,
		rebirths INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS households (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		age REAL NOT NULL,
		income REAL NOT NULL,
		savings REAL NOT NULL,
		loc_x REAL NOT NULL,
		loc_y REAL NOT NULL,
		in_floodplain INTEGER NOT NULL,
		flood_probability REAL NOT NULL,
		depth_estimated REAL NOT NULL,
		damage_estimated REAL NOT NULL,
		depth_actual REAL NOT NULL,
		damage_actual REAL NOT NULL,
		is_adapted INTEGER NOT NULL,
		is_elevated INTEGER NOT NULL,
		is_dryproofed INTEGER NOT NULL,
		is_wetproofed INTEGER NOT NULL,
		measures_json TEXT NOT NULL,
		undergone_json TEXT NOT NULL,
		actual_damage REAL NOT NULL,
		reduced_actual_damage REAL NOT NULL,
		reduced_estimated_damage REAL NOT NULL,
		adoptions INTEGER NOT NULL,
		rebirths INTEGER NOT NULL,
		friends INTEGER NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE INDEX IF NOT EXISTS idx_tick_metrics_run ON tick_metrics(run_id);
	CREATE INDEX IF NOT EXISTS idx_households_damage ON households(run_id, actual_damage);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunMeta identifies one saved run and the settings that produced it.
type RunMeta struct {
	ID         string `db:"id"`
	CreatedAt  string `db:"created_at"`
	Seed       int64  `db:"seed"`
	Households int    `db:"households"`
	Ticks      int    `db:"ticks"`
	Scenario   string `db:"scenario"`
	Network    string `db:"network"`
	ConfigJSON string `db:"config_json"`
}

// HouseholdRow is the stored end-of-run state of one household.
// Boolean flags are stored as integers the way SQLite expects.
type HouseholdRow struct {
	RunID            string  `db:"run_id"`
	ID               int     `db:"id"`
	Age              float64 `db:"age"`
	Income           float64 `db:"income"`
	Savings          float64 `db:"savings"`
	LocX             float64 `db:"loc_x"`
	LocY             float64 `db:"loc_y"`
	InFloodplain     int     `db:"in_floodplain"`
	FloodProbability float64 `db:"flood_probability"`
	DepthEstimated   float64 `db:"depth_estimated"`
	DamageEstimated  float64 `db:"damage_estimated"`
	DepthActual      float64 `db:"depth_actual"`
	DamageActual     float64 `db:"damage_actual"`
	IsAdapted        int     `db:"is_adapted"`
	IsElevated       int     `db:"is_elevated"`
	IsDryproofed     int     `db:"is_dryproofed"`
	IsWetproofed     int     `db:"is_wetproofed"`
	MeasuresJSON     string  `db:"measures_json"`
	UndergoneJSON    string  `db:"undergone_json"`
	ActualDamage     float64 `db:"actual_damage"`
	ReducedActual    float64 `db:"reduced_actual_damage"`
	ReducedEstimated float64 `db:"reduced_estimated_damage"`
	Adoptions        int     `db:"adoptions"`
	Rebirths         int     `db:"rebirths"`
	Friends          int     `db:"friends"`
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveRun writes a complete run atomically and returns its ID. A blank
// meta.ID gets a fresh UUID, a blank meta.CreatedAt the current time.
func (db *DB) SaveRun(meta RunMeta, records []metrics.TickRecord, hs []*household.Household) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt == "" {
		meta.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs
		(id, created_at, seed, households, ticks, scenario, network, config_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.CreatedAt, meta.Seed, meta.Households, meta.Ticks,
		meta.Scenario, meta.Network, meta.ConfigJSON,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	tickStmt, err := tx.Preparex(`INSERT INTO tick_metrics
		(run_id, tick, adapted, elevated, dryproofed, wetproofed,
		 total_savings, mean_savings, total_actual_damage,
		 total_reduced_actual_damage, total_reduced_estimated_damage,
		 adoptions, rebirths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer tickStmt.Close()

	for _, rec := range records {
		if _, err := tickStmt.Exec(
			meta.ID, rec.Tick, rec.Adapted, rec.Elevated, rec.Dryproofed, rec.Wetproofed,
			rec.TotalSavings, rec.MeanSavings, rec.TotalActualDamage,
			rec.TotalReducedActual, rec.TotalReducedEstimated,
			rec.Adoptions, rec.Rebirths,
		); err != nil {
			return "", fmt.Errorf("insert tick %d: %w", rec.Tick, err)
		}
	}

	hhStmt, err := tx.Preparex(`INSERT INTO households
		(run_id, id, age, income, savings, loc_x, loc_y, in_floodplain,
		 flood_probability, depth_estimated, damage_estimated, depth_actual,
		 damage_actual, is_adapted, is_elevated, is_dryproofed, is_wetproofed,
		 measures_json, undergone_json, actual_damage, reduced_actual_damage,
		 reduced_estimated_damage, adoptions, rebirths, friends)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer hhStmt.Close()

	for _, h := range hs {
		measuresJSON, _ := json.Marshal(h.Measures)
		undergoneJSON, _ := json.Marshal(h.Undergone)

		if _, err := hhStmt.Exec(
			meta.ID, h.ID, h.Age, h.Income, h.Savings,
			h.Location.X, h.Location.Y, flag(h.InFloodplain),
			h.FloodProbability, h.DepthEstimated, h.DamageEstimated,
			h.DepthActual, h.DamageActual,
			flag(h.IsAdapted),
			flag(h.Measures[household.MeasureElevation].Active),
			flag(h.Measures[household.MeasureDryproofing].Active),
			flag(h.Measures[household.MeasureWetproofing].Active),
			string(measuresJSON), string(undergoneJSON),
			h.ActualDamage, h.ReducedActualDamage, h.ReducedEstimatedDamage,
			h.Adoptions, h.Rebirths, h.Friends,
		); err != nil {
			return "", fmt.Errorf("insert household %d: %w", h.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run saved", "run", meta.ID, "ticks", len(records), "households", len(hs))
	return meta.ID, nil
}

// LatestRunID returns the ID of the most recently saved run.
func (db *DB) LatestRunID() (string, error) {
	var id string
	err := db.conn.Get(&id,
		"SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT 1")
	if err != nil {
		return "", fmt.Errorf("latest run: %w", err)
	}
	return id, nil
}

// LoadRun retrieves the metadata for a saved run.
func (db *DB) LoadRun(id string) (RunMeta, error) {
	var meta RunMeta
	err := db.conn.Get(&meta, `SELECT
		id, created_at, seed, households, ticks, scenario, network, config_json
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return RunMeta{}, fmt.Errorf("load run %s: %w", id, err)
	}
	return meta, nil
}

// LoadTickMetrics returns the full time series of a run in tick order.
func (db *DB) LoadTickMetrics(runID string) ([]metrics.TickRecord, error) {
	var records []metrics.TickRecord
	err := db.conn.Select(&records, `SELECT
		tick, adapted, elevated, dryproofed, wetproofed,
		total_savings, mean_savings, total_actual_damage,
		total_reduced_actual_damage, total_reduced_estimated_damage,
		adoptions, rebirths
		FROM tick_metrics WHERE run_id = ? ORDER BY tick`, runID)
	if err != nil {
		return nil, fmt.Errorf("load tick metrics for %s: %w", runID, err)
	}
	return records, nil
}

// LoadHouseholds returns the stored end-of-run household states in ID
// order.
func (db *DB) LoadHouseholds(runID string) ([]HouseholdRow, error) {
	var rows []HouseholdRow
	err := db.conn.Select(&rows, householdColumns+
		" FROM households WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("load households for %s: %w", runID, err)
	}
	return rows, nil
}

// TopDamaged returns the households that realized the largest flood
// losses over a run.
func (db *DB) TopDamaged(runID string, limit int) ([]HouseholdRow, error) {
	var rows []HouseholdRow
	err := db.conn.Select(&rows, householdColumns+
		" FROM households WHERE run_id = ? ORDER BY actual_damage DESC, id LIMIT ?",
		runID, limit)
	if err != nil {
		return nil, fmt.Errorf("top damaged for %s: %w", runID, err)
	}
	return rows, nil
}

const householdColumns = `SELECT
	run_id, id, age, income, savings, loc_x, loc_y, in_floodplain,
	flood_probability, depth_estimated, damage_estimated, depth_actual,
	damage_actual, is_adapted, is_elevated, is_dryproofed, is_wetproofed,
	measures_json, undergone_json, actual_damage, reduced_actual_damage,
	reduced_estimated_damage, adoptions, rebirths, friends`
