package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltforce/barbell/internal/models"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps notes in PostgreSQL.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// OpenPostgres creates a connection pool for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &PostgresStore{Pool: pool}, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, n models.Note) (models.Note, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	err := s.Pool.QueryRow(ctx,
		`INSERT INTO notes (id, title, source, hash, body)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (source) DO UPDATE SET
		 title = EXCLUDED.title, hash = EXCLUDED.hash, body = EXCLUDED.body, updated_at = now()
		 RETURNING id, created_at, updated_at`,
		n.ID, n.Title, n.Source, n.Hash, n.Body,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return n, fmt.Errorf("upserting note %s: %w", n.Source, err)
	}
	return n, nil
}

func (s *PostgresStore) IsImported(ctx context.Context, source, hash string) (bool, error) {
	var exists bool
	err := s.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notes WHERE source = $1 AND hash = $2)`,
		source, hash,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking note %s: %w", source, err)
	}
	return exists, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (models.Note, error) {
	var n models.Note
	err := s.Pool.QueryRow(ctx,
		`SELECT id, title, source, hash, body, created_at, updated_at FROM notes WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.Title, &n.Source, &n.Hash, &n.Body, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return n, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return n, fmt.Errorf("querying note %s: %w", id, err)
	}
	return n, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Note, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT id, title, source, hash, body, created_at, updated_at FROM notes ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Source, &n.Hash, &n.Body, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}
