package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ideahub/ideahub-api/internal/model"
)

var (
	ErrIdeaNotFound = errors.New("idea not found")
	ErrNotIdeaOwner = errors.New("idea belongs to another user")
)

// IdeaRepository handles idea persistence and the unseen/ranked queries
// behind the recommendation endpoints.
type IdeaRepository struct {
	db *sql.DB
}

// NewIdeaRepository creates a new IdeaRepository.
func NewIdeaRepository(db *sql.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// Create inserts a new idea, assigning a fresh id.
func (r *IdeaRepository) Create(ctx context.Context, idea *model.Idea) error {
	idea.ID = uuid.NewString()
	idea.CreatedAt = time.Now().UTC()

	query := `INSERT INTO ideas (idea_id, url, description, source_id, poster_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		idea.ID, idea.URL, idea.Description, idea.SourceID, idea.PosterID, idea.CreatedAt)
	return err
}

// GetByID retrieves an idea by its id.
func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*model.Idea, error) {
	query := `SELECT idea_id, url, description, source_id, poster_id, created_at FROM ideas WHERE idea_id = ?`

	idea, err := scanIdea(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return idea, nil
}

// GetDetails retrieves an idea with optional reaction aggregates: the total
// reaction count, the agreement sum over LIKES edges, and (when userID is
// non-empty) the requesting user's own reaction.
func (r *IdeaRepository) GetDetails(ctx context.Context, ideaID string, withReactions bool, userID string) (*model.IdeaDetails, error) {
	idea, err := r.GetByID(ctx, ideaID)
	if err != nil {
		return nil, err
	}

	details := &model.IdeaDetails{Idea: *idea}

	if withReactions {
		query := `
			SELECT COUNT(*),
			       COALESCE(SUM(CASE WHEN kind = 'LIKES' THEN agreement ELSE 0 END), 0)
			FROM reactions WHERE idea_id = ?`

		var count int64
		var agreement float64
		if err := r.db.QueryRowContext(ctx, query, ideaID).Scan(&count, &agreement); err != nil {
			return nil, err
		}
		details.AllReactions = &count
		details.AllAgreement = &agreement
	}

	if userID != "" {
		query := `SELECT kind, agreement FROM reactions WHERE idea_id = ? AND user_id = ?`

		var kind string
		var agreement float64
		err := r.db.QueryRowContext(ctx, query, ideaID, userID).Scan(&kind, &agreement)
		switch {
		case err == nil:
			details.UserReaction = &kind
			details.UserAgreement = &agreement
		case errors.Is(err, sql.ErrNoRows):
			// no reaction from this user; fields stay null
		default:
			return nil, err
		}
	}

	return details, nil
}

// ListIDs returns the ids of all ideas.
func (r *IdeaRepository) ListIDs(ctx context.Context) ([]string, error) {
	return r.listIDs(ctx, `SELECT idea_id FROM ideas ORDER BY idea_id`)
}

// ListUnseenIDs returns the ids of all ideas with no reaction edge from the
// given user.
func (r *IdeaRepository) ListUnseenIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT i.idea_id FROM ideas i
		WHERE NOT EXISTS (
			SELECT 1 FROM reactions r WHERE r.idea_id = i.idea_id AND r.user_id = ?
		)
		ORDER BY i.idea_id`
	return r.listIDs(ctx, query, userID)
}

// ListUnseenRanked returns every idea the user has not reacted to, with its
// aggregate agreement score (sum over LIKES edges) and like/dislike counts,
// ordered by idea id for deterministic selection.
func (r *IdeaRepository) ListUnseenRanked(ctx context.Context, userID string) ([]model.RankedIdea, error) {
	query := `
		SELECT i.idea_id, i.url, i.description, i.source_id, i.poster_id, i.created_at,
		       COALESCE(SUM(CASE WHEN r.kind = 'LIKES' THEN r.agreement ELSE 0 END), 0) AS score,
		       COALESCE(SUM(CASE WHEN r.kind = 'LIKES' THEN 1 ELSE 0 END), 0) AS likes,
		       COALESCE(SUM(CASE WHEN r.kind = 'DISLIKES' THEN 1 ELSE 0 END), 0) AS dislikes
		FROM ideas i
		LEFT JOIN reactions r ON r.idea_id = i.idea_id
		WHERE NOT EXISTS (
			SELECT 1 FROM reactions m WHERE m.idea_id = i.idea_id AND m.user_id = ?
		)
		GROUP BY i.idea_id, i.url, i.description, i.source_id, i.poster_id, i.created_at
		ORDER BY i.idea_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranked := []model.RankedIdea{}
	for rows.Next() {
		var ri model.RankedIdea
		var sourceID, posterID sql.NullString
		err := rows.Scan(&ri.ID, &ri.URL, &ri.Description, &sourceID, &posterID, &ri.CreatedAt,
			&ri.Score, &ri.Likes, &ri.Dislikes)
		if err != nil {
			return nil, err
		}
		ri.SourceID = nullableString(sourceID)
		ri.PosterID = nullableString(posterID)
		ranked = append(ranked, ri)
	}
	return ranked, rows.Err()
}

// Search returns ideas whose description contains the given text.
func (r *IdeaRepository) Search(ctx context.Context, text string) ([]model.Idea, error) {
	query := `
		SELECT idea_id, url, description, source_id, poster_id, created_at
		FROM ideas WHERE description LIKE ? ORDER BY idea_id`
	return r.listIdeas(ctx, query, "%"+text+"%")
}

// ListByPoster returns all ideas posted by the given user, newest first.
func (r *IdeaRepository) ListByPoster(ctx context.Context, userID string) ([]model.Idea, error) {
	query := `
		SELECT idea_id, url, description, source_id, poster_id, created_at
		FROM ideas WHERE poster_id = ? ORDER BY created_at DESC, idea_id`
	return r.listIdeas(ctx, query, userID)
}

// Delete removes an idea and all its reaction edges in one transaction.
// Only the poster may delete; a missing idea yields ErrIdeaNotFound and a
// non-owner ErrNotIdeaOwner.
func (r *IdeaRepository) Delete(ctx context.Context, ideaID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var posterID sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT poster_id FROM ideas WHERE idea_id = ?`, ideaID).Scan(&posterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrIdeaNotFound
		}
		return err
	}

	if !posterID.Valid || posterID.String != userID {
		return ErrNotIdeaOwner
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reactions WHERE idea_id = ?`, ideaID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ideas WHERE idea_id = ?`, ideaID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *IdeaRepository) listIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *IdeaRepository) listIdeas(ctx context.Context, query string, args ...any) ([]model.Idea, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ideas := []model.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, *idea)
	}
	return ideas, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (*model.Idea, error) {
	idea := &model.Idea{}
	var sourceID, posterID sql.NullString
	err := row.Scan(&idea.ID, &idea.URL, &idea.Description, &sourceID, &posterID, &idea.CreatedAt)
	if err != nil {
		return nil, err
	}
	idea.SourceID = nullableString(sourceID)
	idea.PosterID = nullableString(posterID)
	return idea, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
