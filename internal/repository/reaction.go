package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ideahub/ideahub-api/internal/model"
)

// ReactionRepository handles reaction edges between users and ideas.
type ReactionRepository struct {
	db *sql.DB
}

// NewReactionRepository creates a new ReactionRepository.
func NewReactionRepository(db *sql.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Upsert records a reaction, replacing any prior reaction of either kind
// between the same user and idea. The delete-then-insert runs in one
// transaction so at most one edge ever exists per (user, idea) pair; the
// composite primary key on reactions backs the same invariant.
func (r *ReactionRepository) Upsert(ctx context.Context, reaction *model.Reaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM ideas WHERE idea_id = ?`, reaction.IdeaID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrIdeaNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reactions WHERE user_id = ? AND idea_id = ?`,
		reaction.UserID, reaction.IdeaID); err != nil {
		return err
	}

	reaction.CreatedAt = time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reactions (user_id, idea_id, kind, agreement, created_at) VALUES (?, ?, ?, ?, ?)`,
		reaction.UserID, reaction.IdeaID, reaction.Kind, reaction.Agreement, reaction.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// ListSeen returns every idea the user has reacted to, most recent
// reaction first.
func (r *ReactionRepository) ListSeen(ctx context.Context, userID string) ([]model.Idea, error) {
	query := `
		SELECT i.idea_id, i.url, i.description, i.source_id, i.poster_id, i.created_at
		FROM ideas i
		JOIN reactions r ON r.idea_id = i.idea_id
		WHERE r.user_id = ?
		ORDER BY r.created_at DESC, i.idea_id`
	return r.list(ctx, query, userID)
}

// ListByKind returns the ideas the user has reacted to with the given kind.
func (r *ReactionRepository) ListByKind(ctx context.Context, userID, kind string) ([]model.Idea, error) {
	query := `
		SELECT i.idea_id, i.url, i.description, i.source_id, i.poster_id, i.created_at
		FROM ideas i
		JOIN reactions r ON r.idea_id = i.idea_id
		WHERE r.user_id = ? AND r.kind = ?
		ORDER BY r.created_at DESC, i.idea_id`
	return r.list(ctx, query, userID, kind)
}

// ListSeenWithReactions returns every seen idea together with the aggregate
// reaction count, the LIKES agreement sum, and the user's own reaction.
func (r *ReactionRepository) ListSeenWithReactions(ctx context.Context, userID string) ([]model.IdeaDetails, error) {
	query := `
		SELECT i.idea_id, i.url, i.description, i.source_id, i.poster_id, i.created_at,
		       ur.kind, ur.agreement, agg.cnt, agg.total
		FROM ideas i
		JOIN reactions ur ON ur.idea_id = i.idea_id AND ur.user_id = ?
		JOIN (
			SELECT idea_id,
			       COUNT(*) AS cnt,
			       COALESCE(SUM(CASE WHEN kind = 'LIKES' THEN agreement ELSE 0 END), 0) AS total
			FROM reactions GROUP BY idea_id
		) agg ON agg.idea_id = i.idea_id
		ORDER BY ur.created_at DESC, i.idea_id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []model.IdeaDetails{}
	for rows.Next() {
		var d model.IdeaDetails
		var sourceID, posterID sql.NullString
		var kind string
		var agreement, total float64
		var count int64
		err := rows.Scan(&d.ID, &d.URL, &d.Description, &sourceID, &posterID, &d.CreatedAt,
			&kind, &agreement, &count, &total)
		if err != nil {
			return nil, err
		}
		d.SourceID = nullableString(sourceID)
		d.PosterID = nullableString(posterID)
		d.UserReaction = &kind
		d.UserAgreement = &agreement
		d.AllReactions = &count
		d.AllAgreement = &total
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *ReactionRepository) list(ctx context.Context, query string, args ...any) ([]model.Idea, error) {
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
