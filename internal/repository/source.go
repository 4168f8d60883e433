package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-api/internal/model"
)

var (
	ErrSourceNotFound  = errors.New("source not found")
	ErrDuplicateSource = errors.New("source already exists")
)

// SourceRepository handles the static source reference data.
type SourceRepository struct {
	db *sql.DB
}

// NewSourceRepository creates a new SourceRepository.
func NewSourceRepository(db *sql.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// Create inserts a new source, assigning a fresh id.
func (r *SourceRepository) Create(ctx context.Context, source *model.Source) error {
	source.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sources (source_id, name) VALUES (?, ?)`, source.ID, source.Name)
	if err != nil && isDuplicateKeyError(err) {
		return ErrDuplicateSource
	}
	return err
}

// GetByID retrieves a source by its id.
func (r *SourceRepository) GetByID(ctx context.Context, id string) (*model.Source, error) {
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT source_id, name FROM sources WHERE source_id = ?`, id))
}

// GetByName retrieves a source by its exact name.
func (r *SourceRepository) GetByName(ctx context.Context, name string) (*model.Source, error) {
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT source_id, name FROM sources WHERE name = ?`, name))
}

// List returns all sources ordered by name.
func (r *SourceRepository) List(ctx context.Context) ([]model.Source, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT source_id, name FROM sources ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sources := []model.Source{}
	for rows.Next() {
		var s model.Source
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func (r *SourceRepository) scan(row *sql.Row) (*model.Source, error) {
	source := &model.Source{}
	if err := row.Scan(&source.ID, &source.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return source, nil
}
