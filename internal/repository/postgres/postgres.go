package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sokolovart/org-team-manager/internal/config"
	"github.com/sokolovart/org-team-manager/internal/repository"

	_ "github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(dbConfig config.PostgresConfig) (*Storage, error) {
	const op = "repository.postgres.New"

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host, dbConfig.Port, dbConfig.User, dbConfig.Password, dbConfig.DBName, dbConfig.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) DB() *sql.DB { return s.db }

// WithinTx runs fn inside a single database transaction. A non-nil error
// from fn rolls back everything written so far; otherwise the transaction
// commits. This is the unit of rollback for every orchestrator operation.
func (s *Storage) WithinTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	const op = "repository.postgres.WithinTx"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
