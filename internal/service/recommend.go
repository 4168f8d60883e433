package service

import (
	"context"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

// RecommendService selects one unseen idea per request, ranked by the
// aggregate agreement score (sum of agreement scalars over LIKES edges;
// dislikes carry no scalar). Candidates arrive ordered by idea id and every
// tie is broken toward the lower id, so selection is deterministic.
type RecommendService struct {
	ideas *repository.IdeaRepository
}

// NewRecommendService creates a new RecommendService.
func NewRecommendService(ideas *repository.IdeaRepository) *RecommendService {
	return &RecommendService{ideas: ideas}
}

// PopularUnseenIdea returns the unseen idea with the most likes, preferring
// the higher aggregate score among equally liked ideas.
func (s *RecommendService) PopularUnseenIdea(ctx context.Context, userID string) (model.RankedIdea, error) {
	return s.pick(ctx, userID, pickPopular)
}

// AgreeableIdea returns the unseen idea with the highest aggregate
// agreement score: an idea the user will probably like.
func (s *RecommendService) AgreeableIdea(ctx context.Context, userID string) (model.RankedIdea, error) {
	return s.pick(ctx, userID, pickAgreeable)
}

// DisagreeableIdea returns the unseen idea with the lowest aggregate
// agreement score: an idea the user will probably disagree with but should
// see.
func (s *RecommendService) DisagreeableIdea(ctx context.Context, userID string) (model.RankedIdea, error) {
	return s.pick(ctx, userID, pickDisagreeable)
}

func (s *RecommendService) pick(ctx context.Context, userID string, choose func([]model.RankedIdea) model.RankedIdea) (model.RankedIdea, error) {
	candidates, err := s.ideas.ListUnseenRanked(ctx, userID)
	if err != nil {
		return model.RankedIdea{}, err
	}
	if len(candidates) == 0 {
		return model.RankedIdea{}, ErrNoUnseenIdeas
	}
	return choose(candidates), nil
}

// pickPopular selects the candidate with the most likes; ties fall to the
// higher score, then to the earlier candidate. Candidates must be ordered
// by idea id.
func pickPopular(candidates []model.RankedIdea) model.RankedIdea {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Likes > best.Likes || (c.Likes == best.Likes && c.Score > best.Score) {
			best = c
		}
	}
	return best
}

// pickAgreeable selects the candidate with the highest score; ties fall to
// the earlier candidate.
func pickAgreeable(candidates []model.RankedIdea) model.RankedIdea {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}

// pickDisagreeable selects the candidate with the lowest score; ties fall
// to the earlier candidate.
func pickDisagreeable(candidates []model.RankedIdea) model.RankedIdea {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best
}
