// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/robotsim/internal/facts"
)

// Store manages the SQLite database holding the run catalog and the
// append-only fact tables.
type Store struct {
	db *sql.DB
}

// RunRecord is one catalogued simulation run.
type RunRecord struct {
	ID     int64
	Seed   int64
	Width  int
	Height int

	Normal        int
	Broken        int
	Liar          int
	ItemDestroyer int
	Arsonist      int

	Turns  int
	Format string
	Output string

	Counters RunCounters
	Finished bool

	CreatedAt time.Time
}

// Robots returns the roster size.
func (r RunRecord) Robots() int {
	return r.Normal + r.Broken + r.Liar + r.ItemDestroyer + r.Arsonist
}

// RunCounters are the final counters of a run.
type RunCounters struct {
	TurnsPlayed     int
	ItemsGenerated  int
	ItemsCollected  int
	ItemsDestroyed  int
	RobotsDestroyed int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			normal INTEGER NOT NULL DEFAULT 0,
			broken INTEGER NOT NULL DEFAULT 0,
			liar INTEGER NOT NULL DEFAULT 0,
			item_destroyer INTEGER NOT NULL DEFAULT 0,
			arsonist INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL,
			format TEXT NOT NULL,
			output TEXT NOT NULL DEFAULT '',
			turns_played INTEGER NOT NULL DEFAULT 0,
			items_generated INTEGER NOT NULL DEFAULT 0,
			items_collected INTEGER NOT NULL DEFAULT 0,
			items_destroyed INTEGER NOT NULL DEFAULT 0,
			robots_destroyed INTEGER NOT NULL DEFAULT 0,
			finished INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_seed ON runs(seed);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	for _, table := range facts.Tables {
		if _, err := s.db.Exec(factTableDDL(table)); err != nil {
			return fmt.Errorf("table %s: %w", table, err)
		}
	}
	return nil
}

// factTableDDL builds the schema of one fact table: a run_id followed by
// the stream's columns.
func factTableDDL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\trun_id INTEGER NOT NULL", table)
	for _, col := range facts.Columns[table] {
		fmt.Fprintf(&b, ",\n\t%s %s", col, columnType(col))
	}
	b.WriteString("\n);\n")
	fmt.Fprintf(&b, "CREATE INDEX IF NOT EXISTS idx_%s_run ON %s(run_id);", table, table)
	return b.String()
}

func columnType(col string) string {
	switch {
	case strings.HasSuffix(col, "temperature"):
		return "REAL"
	case col == "profile", col == "terrain_type", col == "decided_action", col == "action_successful",
		strings.HasSuffix(col, "_damage_level"), strings.HasSuffix(col, "orientation"):
		return "TEXT"
	default:
		return "INTEGER"
	}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun records a new run before it plays.
// Returns the ID of the inserted record.
func (s *Store) StartRun(run RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (seed, width, height, normal, broken, liar, item_destroyer, arsonist, turns, format, output)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Seed, run.Width, run.Height,
		run.Normal, run.Broken, run.Liar, run.ItemDestroyer, run.Arsonist,
		run.Turns, run.Format, run.Output,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// FinishRun stores the final counters of a run and marks it finished.
func (s *Store) FinishRun(id int64, c RunCounters) error {
	res, err := s.db.Exec(
		`UPDATE runs SET turns_played = ?, items_generated = ?, items_collected = ?,
		 items_destroyed = ?, robots_destroyed = ?, finished = 1
		 WHERE id = ?`,
		c.TurnsPlayed, c.ItemsGenerated, c.ItemsCollected, c.ItemsDestroyed, c.RobotsDestroyed, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish run %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("storage: run %d not found", id)
	}
	return nil
}

const runColumns = `id, seed, width, height, normal, broken, liar, item_destroyer, arsonist,
	turns, format, output, turns_played, items_generated, items_collected, items_destroyed,
	robots_destroyed, finished, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var r RunRecord
	var createdAt any
	err := row.Scan(
		&r.ID, &r.Seed, &r.Width, &r.Height,
		&r.Normal, &r.Broken, &r.Liar, &r.ItemDestroyer, &r.Arsonist,
		&r.Turns, &r.Format, &r.Output,
		&r.Counters.TurnsPlayed, &r.Counters.ItemsGenerated, &r.Counters.ItemsCollected,
		&r.Counters.ItemsDestroyed, &r.Counters.RobotsDestroyed,
		&r.Finished, &createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Run retrieves a run by id. Returns nil if it does not exist.
func (s *Store) Run(id int64) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// ListRuns retrieves the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// CountFacts returns the number of rows a run wrote to a fact table.
func (s *Store) CountFacts(runID int64, table string) (int, error) {
	if _, ok := facts.Columns[table]; !ok {
		return 0, fmt.Errorf("storage: unknown fact table %q", table)
	}
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count %s: %w", table, err)
	}
	return n, nil
}

// DeleteRun removes a run and every fact it wrote.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range facts.Tables {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, id); err != nil {
			return fmt.Errorf("storage: cannot clear %s: %w", table, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return tx.Commit()
}
