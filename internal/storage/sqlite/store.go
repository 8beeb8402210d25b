// Package sqlite keeps the run catalog in a single SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/san-kum/contrastviz/internal/storage"
)

//go:embed schema.sql
var schema string

// Store provides SQLite-backed run persistence.
type Store struct {
	path  string
	sqlDB *sql.DB
}

// Open opens a run store at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{path: cleanPath, sqlDB: sqlDB}
	if err := store.Init(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return store, nil
}

// Init applies the schema. It is idempotent.
func (s *Store) Init() error {
	if _, err := s.sqlDB.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts the run and its metric series in one transaction.
func (s *Store) Save(ctx context.Context, r *storage.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("run id is required")
	}

	artifacts, err := json.Marshal(r.Artifacts)
	if err != nil {
		return fmt.Errorf("encode artifacts: %w", err)
	}
	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	var final []byte
	if r.Final != nil {
		if final, err = json.Marshal(r.Final); err != nil {
			return fmt.Errorf("encode final points: %w", err)
		}
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (
	id,
	mode,
	dim,
	steps,
	seed,
	easing,
	output,
	artifacts,
	metrics,
	final_points,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		r.ID,
		r.Mode,
		r.Dim,
		r.Steps,
		r.Seed,
		r.Easing,
		r.Output,
		string(artifacts),
		string(metrics),
		string(final),
		r.Timestamp.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_series (run_id, name, step, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare series: %w", err)
	}
	defer stmt.Close()

	for _, name := range r.SeriesNames() {
		for step, v := range r.Series[name] {
			if _, err := stmt.ExecContext(ctx, r.ID, name, step, v); err != nil {
				return fmt.Errorf("insert series %s: %w", name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const selectRun = `
SELECT
	id,
	mode,
	dim,
	steps,
	seed,
	easing,
	output,
	artifacts,
	metrics,
	final_points,
	created_at
FROM runs
`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner, withFinal bool) (*storage.Run, error) {
	var (
		r                         storage.Run
		artifacts, metrics, final string
		created                   int64
	)
	if err := row.Scan(&r.ID, &r.Mode, &r.Dim, &r.Steps, &r.Seed, &r.Easing, &r.Output, &artifacts, &metrics, &final, &created); err != nil {
		return nil, err
	}
	r.Timestamp = time.UnixMilli(created).UTC()
	if err := json.Unmarshal([]byte(artifacts), &r.Artifacts); err != nil {
		return nil, fmt.Errorf("decode artifacts: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &r.Metrics); err != nil {
		return nil, fmt.Errorf("decode metrics: %w", err)
	}
	if withFinal && final != "" {
		r.Final = &storage.Points{}
		if err := json.Unmarshal([]byte(final), r.Final); err != nil {
			return nil, fmt.Errorf("decode final points: %w", err)
		}
	}
	return &r, nil
}

// List returns every run, oldest first, without series or final points.
func (s *Store) List(ctx context.Context) ([]storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, selectRun+"ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]storage.Run, 0)
	for rows.Next() {
		r, err := scanRun(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Load returns one run with its series and final points.
func (s *Store) Load(ctx context.Context, id string) (*storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := scanRun(s.sqlDB.QueryRowContext(ctx, selectRun+"WHERE id = ?", id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT name, value FROM run_series WHERE run_id = ? ORDER BY name, step`, id)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}
	defer rows.Close()

	r.Series = make(map[string][]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		r.Series[name] = append(r.Series[name], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}
	return r, nil
}

var _ storage.Catalog = (*Store)(nil)
