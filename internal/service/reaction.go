package service

import (
	"context"
	"errors"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

var ErrReactionNotSaved = errors.New("reaction could not be saved")

// ReactionService records likes and dislikes and lists seen ideas.
type ReactionService struct {
	reactions *repository.ReactionRepository
	metrics   MetricsRecorder
}

// NewReactionService creates a new ReactionService.
func NewReactionService(reactions *repository.ReactionRepository, metrics MetricsRecorder) *ReactionService {
	return &ReactionService{reactions: reactions, metrics: metrics}
}

// LikeIdea records a LIKES edge with the given agreement scalar, replacing
// any prior reaction between the same user and idea.
func (s *ReactionService) LikeIdea(ctx context.Context, userID, ideaID string, agreement float64) (model.Reaction, error) {
	return s.react(ctx, model.Reaction{
		UserID:    userID,
		IdeaID:    ideaID,
		Kind:      model.ReactionLikes,
		Agreement: agreement,
	})
}

// DislikeIdea records a DISLIKES edge, replacing any prior reaction between
// the same user and idea. Dislikes carry no agreement scalar.
func (s *ReactionService) DislikeIdea(ctx context.Context, userID, ideaID string) (model.Reaction, error) {
	return s.react(ctx, model.Reaction{
		UserID: userID,
		IdeaID: ideaID,
		Kind:   model.ReactionDislikes,
	})
}

func (s *ReactionService) react(ctx context.Context, reaction model.Reaction) (model.Reaction, error) {
	if err := s.reactions.Upsert(ctx, &reaction); err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return model.Reaction{}, ErrReactionNotSaved
		}
		return model.Reaction{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordReaction(reaction.Kind)
	}

	return reaction, nil
}

// SeenIdeas returns every idea the user has reacted to.
func (s *ReactionService) SeenIdeas(ctx context.Context, userID string) ([]model.Idea, error) {
	return s.reactions.ListSeen(ctx, userID)
}

// LikedIdeas returns the ideas the user has liked.
func (s *ReactionService) LikedIdeas(ctx context.Context, userID string) ([]model.Idea, error) {
	return s.reactions.ListByKind(ctx, userID, model.ReactionLikes)
}

// DislikedIdeas returns the ideas the user has disliked.
func (s *ReactionService) DislikedIdeas(ctx context.Context, userID string) ([]model.Idea, error) {
	return s.reactions.ListByKind(ctx, userID, model.ReactionDislikes)
}

// SeenIdeasWithReactions returns every seen idea with aggregate reactions
// and the user's own reaction attached.
func (s *ReactionService) SeenIdeasWithReactions(ctx context.Context, userID string) ([]model.IdeaDetails, error) {
	return s.reactions.ListSeenWithReactions(ctx, userID)
}
