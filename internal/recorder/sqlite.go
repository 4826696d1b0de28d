package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation runs to a SQLite database.
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
		`CREATE TABLE IF NOT EXISTS runs (
			run_id            TEXT PRIMARY KEY,
			timestamp         INTEGER NOT NULL,
			source_file       TEXT,
			record_count      INTEGER,
			attention_count   INTEGER,
			disposition_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS disposition_days (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			date   TEXT NOT NULL,
			rules  TEXT,
			attention_in_10 INTEGER,
			attention_in_30 INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_disposition_run ON disposition_days(run_id)`,
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

	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO runs
		(run_id, timestamp, source_file, record_count, attention_count, disposition_count)
		VALUES (?,?,?,?,?,?)`,
		run.RunID, time.Now().Unix(), run.SourceFile,
		run.RecordCount, run.AttentionCount, run.DispositionCount,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, d := range run.Dispositions {
		rules := make([]string, len(d.Rules))
		for i, rule := range d.Rules {
			rules[i] = string(rule)
		}
		if _, err := tx.Exec(`INSERT INTO disposition_days
			(run_id, date, rules, attention_in_10, attention_in_30)
			VALUES (?,?,?,?,?)`,
			run.RunID, d.Date.Format("2006-01-02"), strings.Join(rules, ","),
			d.AttentionIn10, d.AttentionIn30,
		); err != nil {
			return fmt.Errorf("insert disposition day: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
