package analysis

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"transcript-insights/internal/application"
	domain "transcript-insights/internal/domain/analysis"
	"transcript-insights/internal/infra/ai/prompt"
)

// Service implements use-cases for transcript analysis.
// Service is designed to be used concurrently and is thread-safe.
type Service struct {
	completer domain.Completer
	repo      domain.Repository
	clock     application.Clock
	log       *logrus.Entry
}

func NewService(completer domain.Completer, repo domain.Repository, clock application.Clock, log *logrus.Entry) *Service {
	return &Service{completer: completer, repo: repo, clock: clock, log: log}
}

//
// ==== USE CASES ====
//

// Analyze runs the single-transcript pipeline: validate, build prompts, call
// the completion provider, persist the record. One store write on success,
// none on any failure. No retries.
func (s *Service) Analyze(ctx context.Context, transcript string) (*domain.TranscriptAnalysis, error) {
	correlationID := uuid.New()
	log := s.log.WithField("correlation_id", correlationID)

	if err := validateTranscript(transcript); err != nil {
		log.WithError(err).Warn("transcript rejected")
		return nil, err
	}

	log.Info("starting transcript analysis")
	start := s.clock.Now()

	result, err := s.completer.Complete(ctx, prompt.GetSystemPrompt(), prompt.GetUserPrompt(transcript))
	if err != nil {
		log.WithError(err).WithField("duration", s.clock.Now().Sub(start).String()).
			Error("transcript analysis failed")
		return nil, err
	}

	a := &domain.TranscriptAnalysis{
		ID:          correlationID,
		Summary:     result.Summary,
		NextActions: result.ActionItems,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.Save(ctx, a); err != nil {
		log.WithError(err).Error("failed to store analysis")
		return nil, err
	}

	log.WithField("duration", s.clock.Now().Sub(start).String()).
		Info("transcript analysis completed")
	return a, nil
}

func validateTranscript(transcript string) error {
	if strings.TrimSpace(transcript) == "" {
		return domain.ErrEmptyTranscript
	}
	if size := len(transcript); size > domain.MaxTranscriptSize {
		return &domain.TooLargeError{Size: size, MaxSize: domain.MaxTranscriptSize}
	}
	return nil
}
