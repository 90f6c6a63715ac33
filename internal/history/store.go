// Package history persists per-run evaluation summaries in SQLite so attack
// campaigns can be compared after the fact.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/advgauge/advgauge/internal/eval"
	"github.com/advgauge/advgauge/internal/stats"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS eval_runs (
	run_id           TEXT PRIMARY KEY,
	scorer           TEXT NOT NULL,
	samples          INTEGER NOT NULL,
	src_mean         REAL,
	src_std          REAL,
	src_p5           REAL,
	src_p95          REAL,
	tgt_mean         REAL,
	tgt_std          REAL,
	tgt_p5           REAL,
	tgt_p95          REAL,
	success_fraction REAL,
	created_at       TEXT NOT NULL
);
`

// #endregion schema

// #region store
// Store appends evaluation run summaries to a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
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

// #endregion store

// #region record
// Run is one stored evaluation run. Source, Target and Success are nil for
// sides the run did not evaluate.
type Run struct {
	RunID     string
	Scorer    string
	Samples   int
	Source    *stats.Summary
	Target    *stats.Summary
	Success   *float64
	CreatedAt time.Time
}

// Record appends the report as a new run and returns its generated id.
func (s *Store) Record(rep *eval.Report) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	var srcMean, srcStd, srcP5, srcP95 interface{}
	if rep.Source != nil {
		srcMean, srcStd = rep.Source.Summary.Mean, rep.Source.Summary.Std
		srcP5, srcP95 = rep.Source.Summary.P5, rep.Source.Summary.P95
	}
	var tgtMean, tgtStd, tgtP5, tgtP95 interface{}
	if rep.Target != nil {
		tgtMean, tgtStd = rep.Target.Summary.Mean, rep.Target.Summary.Std
		tgtP5, tgtP95 = rep.Target.Summary.P5, rep.Target.Summary.P95
	}
	var success interface{}
	if rep.BothSides() {
		success = rep.SuccessFraction
	}

	_, err := s.db.Exec(
		`INSERT INTO eval_runs (run_id, scorer, samples,
		   src_mean, src_std, src_p5, src_p95,
		   tgt_mean, tgt_std, tgt_p5, tgt_p95,
		   success_fraction, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rep.ScorerName, rep.N,
		srcMean, srcStd, srcP5, srcP95,
		tgtMean, tgtStd, tgtP5, tgtP95,
		success, now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// #endregion record

// #region list
// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, scorer, samples,
		   src_mean, src_std, src_p5, src_p95,
		   tgt_mean, tgt_std, tgt_p5, tgt_p95,
		   success_fraction, created_at
		 FROM eval_runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var srcMean, srcStd, srcP5, srcP95 sql.NullFloat64
		var tgtMean, tgtStd, tgtP5, tgtP95 sql.NullFloat64
		var success sql.NullFloat64
		var createdStr string

		err := rows.Scan(&r.RunID, &r.Scorer, &r.Samples,
			&srcMean, &srcStd, &srcP5, &srcP95,
			&tgtMean, &tgtStd, &tgtP5, &tgtP95,
			&success, &createdStr)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		if srcMean.Valid {
			r.Source = &stats.Summary{
				Mean: srcMean.Float64, Std: srcStd.Float64,
				P5: srcP5.Float64, P95: srcP95.Float64,
			}
		}
		if tgtMean.Valid {
			r.Target = &stats.Summary{
				Mean: tgtMean.Float64, Std: tgtStd.Float64,
				P5: tgtP5.Float64, P95: tgtP95.Float64,
			}
		}
		if success.Valid {
			v := success.Float64
			r.Success = &v
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// #endregion list
