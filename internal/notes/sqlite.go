package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/meltforce/barbell/internal/models"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps notes in a local SQLite file. Timestamps are stored
// as RFC 3339 text.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens the database at path. The schema must already exist;
// see RunMigrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening notes db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging notes db: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, n models.Note) (models.Note, error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	now := s.now().UTC().Format(time.RFC3339Nano)
	var id, created, updated string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO notes (id, title, source, hash, body, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source) DO UPDATE SET
		 title = excluded.title, hash = excluded.hash, body = excluded.body, updated_at = excluded.updated_at
		 RETURNING id, created_at, updated_at`,
		n.ID.String(), n.Title, n.Source, n.Hash, n.Body, now, now,
	).Scan(&id, &created, &updated)
	if err != nil {
		return n, fmt.Errorf("upserting note %s: %w", n.Source, err)
	}
	return n, scanTimes(&n, id, created, updated)
}

func (s *SQLiteStore) IsImported(ctx context.Context, source, hash string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE source = ? AND hash = ?`,
		source, hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking note %s: %w", source, err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id uuid.UUID) (models.Note, error) {
	var n models.Note
	var rawID, created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, source, hash, body, created_at, updated_at FROM notes WHERE id = ?`,
		id.String(),
	).Scan(&rawID, &n.Title, &n.Source, &n.Hash, &n.Body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return n, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return n, fmt.Errorf("querying note %s: %w", id, err)
	}
	return n, scanTimes(&n, rawID, created, updated)
}

func (s *SQLiteStore) List(ctx context.Context) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, source, hash, body, created_at, updated_at FROM notes ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		var n models.Note
		var rawID, created, updated string
		if err := rows.Scan(&rawID, &n.Title, &n.Source, &n.Hash, &n.Body, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if err := scanTimes(&n, rawID, created, updated); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanTimes(n *models.Note, id, created, updated string) error {
	var err error
	if n.ID, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("parsing note id %q: %w", id, err)
	}
	if n.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	if n.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return fmt.Errorf("parsing updated_at %q: %w", updated, err)
	}
	return nil
}
