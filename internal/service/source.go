package service

import (
	"context"
	"errors"

	"github.com/ideahub/ideahub-api/internal/model"
	"github.com/ideahub/ideahub-api/internal/repository"
)

var ErrSourceNotFound = errors.New("source not found")

// SourceService exposes the static source reference data.
type SourceService struct {
	sources *repository.SourceRepository
}

// NewSourceService creates a new SourceService.
func NewSourceService(sources *repository.SourceRepository) *SourceService {
	return &SourceService{sources: sources}
}

// ListSources returns all sources.
func (s *SourceService) ListSources(ctx context.Context) ([]model.Source, error) {
	return s.sources.List(ctx)
}

// GetSource retrieves a source by id.
func (s *SourceService) GetSource(ctx context.Context, id string) (*model.Source, error) {
	source, err := s.sources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSourceNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return source, nil
}
