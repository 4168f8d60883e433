package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

var (
	ErrIdeaNotFound  = errors.New("idea not found")
	ErrNoIdeas       = errors.New("no ideas exist")
	ErrNoUnseenIdeas = errors.New("no unseen ideas left")
	ErrNotIdeaOwner  = errors.New("only the poster can delete an idea")
)

// MetricsRecorder receives domain events worth counting. Satisfied by
// metrics.Collector; a nil-safe no-op is used when metrics are disabled.
type MetricsRecorder interface {
	RecordIdeaCreated()
	RecordReaction(kind string)
}

// IdeaService handles idea CRUD and query operations.
type IdeaService struct {
	ideas   *repository.IdeaRepository
	metrics MetricsRecorder
}

// NewIdeaService creates a new IdeaService.
func NewIdeaService(ideas *repository.IdeaRepository, metrics MetricsRecorder) *IdeaService {
	return &IdeaService{ideas: ideas, metrics: metrics}
}

// AddIdea creates an idea posted by the given user, optionally linked to a
// source.
func (s *IdeaService) AddIdea(ctx context.Context, userID string, req model.PostIdeaRequest) (model.Idea, error) {
	idea := &model.Idea{
		URL:         req.URL,
		Description: req.Description,
		PosterID:    &userID,
	}
	if req.SourceID != "" {
		sourceID := req.SourceID
		idea.SourceID = &sourceID
	}

	if err := s.ideas.Create(ctx, idea); err != nil {
		return model.Idea{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordIdeaCreated()
	}

	return *idea, nil
}

// GetIdea retrieves an idea with optional reaction aggregates and, when
// userID is non-empty, the user's own reaction.
func (s *IdeaService) GetIdea(ctx context.Context, ideaID string, withReactions bool, userID string) (*model.IdeaDetails, error) {
	details, err := s.ideas.GetDetails(ctx, ideaID, withReactions, userID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return details, nil
}

// RandomIdea returns an idea picked uniformly at random over all ideas.
func (s *IdeaService) RandomIdea(ctx context.Context) (*model.Idea, error) {
	ids, err := s.ideas.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoIdeas
	}

	return s.ideas.GetByID(ctx, ids[rand.IntN(len(ids))])
}

// RandomUnseenIdea returns an idea picked uniformly at random over the
// ideas the user has not yet reacted to.
func (s *IdeaService) RandomUnseenIdea(ctx context.Context, userID string) (*model.Idea, error) {
	ids, err := s.ideas.ListUnseenIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoUnseenIdeas
	}

	return s.ideas.GetByID(ctx, ids[rand.IntN(len(ids))])
}

// SearchIdeas returns ideas whose description contains the given text.
func (s *IdeaService) SearchIdeas(ctx context.Context, text string) ([]model.Idea, error) {
	return s.ideas.Search(ctx, text)
}

// DeleteIdea removes an idea and its reaction edges. Only the poster may
// delete.
func (s *IdeaService) DeleteIdea(ctx context.Context, ideaID, userID string) (string, error) {
	if err := s.ideas.Delete(ctx, ideaID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrIdeaNotFound):
			return "", ErrIdeaNotFound
		case errors.Is(err, repository.ErrNotIdeaOwner):
			return "", ErrNotIdeaOwner
		}
		return "", err
	}
	return ideaID, nil
}

// PostedIdeas returns all ideas posted by the given user.
func (s *IdeaService) PostedIdeas(ctx context.Context, userID string) ([]model.Idea, error) {
	return s.ideas.ListByPoster(ctx, userID)
}
