package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

// Run is one finished run
type Run struct {
	ID       int64
	Score    int
	Level    int
	Finished time.Time
}

// Store keeps finished runs in a local SQLite file. The best score is the
// highest score of any stored run.
type Store struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens or creates the database at path
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if dir := filepath.Dir(path); path != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one connection keeps :memory: databases alive and serialises writers
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}

	log.Debug("score store opened", zap.String("path", path))
	return &Store{db: db, log: log, now: time.Now}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// BestScore returns the highest recorded score, 0 when nothing is stored
func (s *Store) BestScore() (int, error) {
	return s.best(context.Background(), s.db)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) best(ctx context.Context, q queryer) (int, error) {
	var best sql.NullInt64
	if err := q.QueryRowContext(ctx, `SELECT MAX(score) FROM runs`).Scan(&best); err != nil {
		return 0, fmt.Errorf("read best score: %w", err)
	}
	return int(best.Int64), nil
}

// ReportScore stores a finished run and reports whether it beat every
// earlier run
func (s *Store) ReportScore(ctx context.Context, score, level int) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin report: %w", err)
	}
	defer tx.Rollback()

	prev, err := s.best(ctx, tx)
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (score, level, finished_at) VALUES (?, ?, ?)`,
		score, level, s.now().UnixMilli())
	if err != nil {
		return false, fmt.Errorf("insert run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit run: %w", err)
	}

	newBest := score > prev
	if newBest {
		s.log.Info("new best score", zap.Int("score", score), zap.Int("previous", prev))
	}
	return newBest, nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, level, finished_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finished int64
		if err := rows.Scan(&r.ID, &r.Score, &r.Level, &finished); err != nil {
			return nil, err
		}
		r.Finished = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
