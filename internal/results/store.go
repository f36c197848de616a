// Package results persists benchmark score records in SQLite.
package results

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dxcbench/faultbench/internal/benchmark"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id        TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	duration_ms   INTEGER NOT NULL,
	aggregation   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scores (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	model         TEXT NOT NULL,
	engine        TEXT NOT NULL,
	scenario      TEXT NOT NULL,
	status        TEXT NOT NULL,
	score         REAL NOT NULL,
	duration_ms   INTEGER NOT NULL,
	detail        TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_scores_run ON scores(run_id, model, engine);
`

// Store appends run outcomes to a SQLite database. It implements
// benchmark.Recorder.
type Store struct {
	db *sql.DB
}

var _ benchmark.Recorder = (*Store)(nil)

// Open opens (or creates) the score database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun appends a run and all of its score records in one transaction.
func (s *Store) RecordRun(outcome *benchmark.RunOutcome) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, started_at, duration_ms, aggregation) VALUES (?, ?, ?, ?)`,
		outcome.RunID,
		outcome.StartedAt.UTC().Format(time.RFC3339Nano),
		outcome.Duration.Milliseconds(),
		outcome.Aggregation,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO scores (run_id, model, engine, scenario, status, score, duration_ms, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, res := range outcome.Results {
		for _, rec := range res.Records {
			_, err := stmt.Exec(
				outcome.RunID, res.Model, res.Engine,
				rec.Scenario, string(rec.Status), rec.Score,
				rec.Duration.Milliseconds(), rec.Detail,
			)
			if err != nil {
				return fmt.Errorf("insert score: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// RunSummary is one stored run, as listed by Runs.
type RunSummary struct {
	RunID       string
	StartedAt   time.Time
	Duration    time.Duration
	Aggregation string
	Scores      int
}

// Runs lists stored runs, most recent first.
func (s *Store) Runs() ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT r.run_id, r.started_at, r.duration_ms, r.aggregation, COUNT(sc.id)
		FROM runs r LEFT JOIN scores sc ON sc.run_id = r.run_id
		GROUP BY r.run_id
		ORDER BY r.started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&r.RunID, &startedAt, &durationMs, &r.Aggregation, &r.Scores); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Scores returns one run's score records grouped back into model results,
// in insertion order.
func (s *Store) Scores(runID string) ([]benchmark.ModelResult, error) {
	rows, err := s.db.Query(`
		SELECT model, engine, scenario, status, score, duration_ms, detail
		FROM scores WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var results []benchmark.ModelResult
	for rows.Next() {
		var model, engine, scenarioName, status, detail string
		var score float64
		var durationMs int64
		if err := rows.Scan(&model, &engine, &scenarioName, &status, &score, &durationMs, &detail); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}

		rec := benchmark.ScoreRecord{
			Scenario: scenarioName,
			Status:   benchmark.Status(status),
			Score:    score,
			Duration: time.Duration(durationMs) * time.Millisecond,
			Detail:   detail,
		}

		if n := len(results); n > 0 && results[n-1].Model == model && results[n-1].Engine == engine {
			results[n-1].Records = append(results[n-1].Records, rec)
		} else {
			results = append(results, benchmark.ModelResult{
				Model:   model,
				Engine:  engine,
				Records: []benchmark.ScoreRecord{rec},
			})
		}
	}
	return results, rows.Err()
}
