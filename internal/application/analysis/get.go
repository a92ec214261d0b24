package analysis

import (
	"context"

	"github.com/google/uuid"

	domain "transcript-insights/internal/domain/analysis"
)

// Get returns a stored analysis by id. Pure read, no side effects.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.TranscriptAnalysis, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		s.log.WithField("id", id).Warn("analysis not found")
		return nil, &domain.NotFoundError{ID: id.String()}
	}
	return a, nil
}
