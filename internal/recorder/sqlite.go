package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS report_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			delivered     INTEGER NOT NULL,
			failure_count INTEGER NOT NULL,
			report        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON report_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS quote_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL,
			group_name   TEXT,
			display_name TEXT,
			symbol       TEXT,
			value        REAL,
			daily_pct    REAL,
			weekly_pct   REAL,
			volume       INTEGER,
			low_52w      REAL,
			high_52w     REAL,
			ok           INTEGER NOT NULL,
			note         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_run ON quote_snapshots(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.Exec(`INSERT INTO report_runs (timestamp, delivered, failure_count, report)
		VALUES (?,?,?,?)`,
		run.StartedAt.Unix(), boolInt(run.Delivered), run.Failures, run.Report,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, s := range run.Snapshots {
		if _, err := r.db.Exec(`INSERT INTO quote_snapshots
			(run_id, group_name, display_name, symbol, value, daily_pct, weekly_pct, volume, low_52w, high_52w, ok, note)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, s.Group, s.Name, s.Symbol, s.Value, s.DailyPct, s.WeeklyPct,
			s.Volume, s.Low52w, s.High52w, boolInt(s.OK), s.Note,
		); err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
