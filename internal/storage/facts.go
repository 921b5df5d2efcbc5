package storage

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/robotsim/internal/facts"
)

// FactSink writes the fact streams of one run into the store's fact
// tables. Every batch is one transaction.
type FactSink struct {
	store *Store
	runID int64
}

// FactSink returns a sink that tags every row with runID.
func (s *Store) FactSink(runID int64) *FactSink {
	return &FactSink{store: s, runID: runID}
}

var _ facts.Sink = (*FactSink)(nil)

type fielder interface {
	Fields() []string
}

// insert writes rows in one transaction. Empty fields are stored as NULL.
func insert[R fielder](f *FactSink, table string, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	cols := facts.Columns[table]
	query := fmt.Sprintf("INSERT INTO %s (run_id, %s) VALUES (?%s)",
		table, strings.Join(cols, ", "), strings.Repeat(", ?", len(cols)))

	tx, err := f.store.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: %s: cannot begin: %w", table, err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("storage: %s: cannot prepare insert: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols)+1)
	args[0] = f.runID
	for _, row := range rows {
		for i, v := range row.Fields() {
			if v == "" {
				args[i+1] = nil
			} else {
				args[i+1] = v
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("storage: %s: cannot insert row: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: %s: cannot commit: %w", table, err)
	}
	return nil
}

func (f *FactSink) MapPoints(rows []facts.MapPointRow) error {
	return insert(f, facts.TableMapPoint, rows)
}

func (f *FactSink) Items(rows []facts.ItemRow) error {
	return insert(f, facts.TableItem, rows)
}

func (f *FactSink) Robots(rows []facts.RobotRow) error {
	return insert(f, facts.TableRobot, rows)
}

func (f *FactSink) Steps(rows []facts.StepRow) error {
	return insert(f, facts.TableStep, rows)
}

func (f *FactSink) Memory(rows []facts.MemoryRow) error {
	return insert(f, facts.TableMemory, rows)
}

func (f *FactSink) MapStates(rows []facts.MapStateRow) error {
	return insert(f, facts.TableMapState, rows)
}

// Close is a no-op; the store outlives its sinks.
func (f *FactSink) Close() error {
	return nil
}
