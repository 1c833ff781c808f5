// Package storage provides SQLite-based persistence for saved calculations.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/levelup/internal/config"
)

// Store manages the SQLite database connection for calculation history.
type Store struct {
	db *sql.DB
}

// Calculation is a saved calculator snapshot.
type Calculation struct {
	ID                  int64
	Tier                string
	Nature              string
	StartLevel          int
	InitialRemainingExp int
	BoostRate           int
	DepletionRate       float64
	TargetLevel         int
	Candies             int
	FinalLevel          int
	RemainingExp        int
	Shards              float64
	Note                string
	CreatedAt           time.Time
}

// TierStats contains aggregated statistics for one tier.
type TierStats struct {
	Tier         string
	Count        int
	TotalCandies int64
	TotalShards  float64
	LastSaved    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tier TEXT NOT NULL,
			nature TEXT NOT NULL,
			start_level INTEGER NOT NULL,
			initial_remaining_exp INTEGER NOT NULL,
			boost_rate INTEGER NOT NULL DEFAULT 1,
			depletion_rate REAL NOT NULL DEFAULT 1,
			target_level INTEGER NOT NULL,
			candies INTEGER NOT NULL,
			final_level INTEGER NOT NULL,
			remaining_exp INTEGER NOT NULL,
			shards REAL NOT NULL,
			note TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_calculations_tier ON calculations(tier);
		CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveCalculation records a calculation.
// Returns the ID of the inserted record.
func (s *Store) SaveCalculation(c Calculation) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO calculations
		 (tier, nature, start_level, initial_remaining_exp, boost_rate, depletion_rate,
		  target_level, candies, final_level, remaining_exp, shards, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Tier, c.Nature, c.StartLevel, c.InitialRemainingExp, c.BoostRate, c.DepletionRate,
		c.TargetLevel, c.Candies, c.FinalLevel, c.RemainingExp, c.Shards, c.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save calculation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const calculationColumns = `id, tier, nature, start_level, initial_remaining_exp, boost_rate,
	depletion_rate, target_level, candies, final_level, remaining_exp, shards, note, created_at`

// RecentCalculations retrieves the most recent calculations, newest first.
// An empty tier matches all tiers.
func (s *Store) RecentCalculations(tier string, limit int) ([]Calculation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+calculationColumns+`
		 FROM calculations
		 WHERE ? = '' OR tier = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		tier, tier, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query calculations: %w", err)
	}
	defer rows.Close()

	var results []Calculation
	for rows.Next() {
		var c Calculation
		var createdAt any
		if err := rows.Scan(
			&c.ID,
			&c.Tier,
			&c.Nature,
			&c.StartLevel,
			&c.InitialRemainingExp,
			&c.BoostRate,
			&c.DepletionRate,
			&c.TargetLevel,
			&c.Candies,
			&c.FinalLevel,
			&c.RemainingExp,
			&c.Shards,
			&c.Note,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		c.CreatedAt = parseTime(createdAt)
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// CalculationByID retrieves one calculation. Returns nil if it does not exist.
func (s *Store) CalculationByID(id int64) (*Calculation, error) {
	var c Calculation
	var createdAt any

	err := s.db.QueryRow(
		`SELECT `+calculationColumns+` FROM calculations WHERE id = ?`,
		id,
	).Scan(
		&c.ID,
		&c.Tier,
		&c.Nature,
		&c.StartLevel,
		&c.InitialRemainingExp,
		&c.BoostRate,
		&c.DepletionRate,
		&c.TargetLevel,
		&c.Candies,
		&c.FinalLevel,
		&c.RemainingExp,
		&c.Shards,
		&c.Note,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query calculation: %w", err)
	}

	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}

// SetNote replaces the note of one calculation.
// Returns sql.ErrNoRows if the calculation does not exist.
func (s *Store) SetNote(id int64, note string) error {
	result, err := s.db.Exec("UPDATE calculations SET note = ? WHERE id = ?", note, id)
	if err != nil {
		return fmt.Errorf("storage: cannot set note: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot set note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: calculation %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// DeleteCalculation removes one calculation.
func (s *Store) DeleteCalculation(id int64) error {
	_, err := s.db.Exec("DELETE FROM calculations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete calculation: %w", err)
	}
	return nil
}

// ClearHistory deletes all saved calculations.
func (s *Store) ClearHistory() error {
	_, err := s.db.Exec("DELETE FROM calculations")
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// Stats retrieves per-tier statistics for all saved calculations.
func (s *Store) Stats() (map[string]*TierStats, error) {
	rows, err := s.db.Query(
		`SELECT tier, COUNT(*), SUM(candies), SUM(shards), MAX(created_at)
		 FROM calculations
		 GROUP BY tier`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*TierStats)
	for rows.Next() {
		var ts TierStats
		var lastSaved any
		if err := rows.Scan(&ts.Tier, &ts.Count, &ts.TotalCandies, &ts.TotalShards, &lastSaved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ts.LastSaved = parseTime(lastSaved)
		stats[ts.Tier] = &ts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from SQLite.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
