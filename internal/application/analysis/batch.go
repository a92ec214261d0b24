package analysis

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	domain "transcript-insights/internal/domain/analysis"
)

// maxConcurrentCompletions caps in-flight provider calls. The limiter is
// scoped per AnalyzeBatch invocation, so concurrent batches may together
// exceed the cap process-wide.
const maxConcurrentCompletions = 5

// AnalyzeBatch fans transcripts out to Analyze under the concurrency cap.
// The result slice matches the input in length and order, and one item
// failing never cancels or affects its siblings.
func (s *Service) AnalyzeBatch(ctx context.Context, transcripts []string) []domain.BatchItemResult {
	s.log.WithField("count", len(transcripts)).Info("starting batch analysis")
	start := s.clock.Now()

	sem := semaphore.NewWeighted(maxConcurrentCompletions)
	results := make([]domain.BatchItemResult, len(transcripts))

	var wg sync.WaitGroup
	for i, transcript := range transcripts {
		wg.Add(1)
		go func(i int, transcript string) {
			defer wg.Done()
			results[i] = s.analyzeOne(ctx, sem, transcript)
		}(i, transcript)
	}
	wg.Wait()

	successful := 0
	for _, r := range results {
		if r.Success() {
			successful++
		}
	}

	s.log.WithFields(logrus.Fields{
		"total":      len(transcripts),
		"successful": successful,
		"duration":   s.clock.Now().Sub(start).String(),
	}).Info("batch analysis completed")

	return results
}

func (s *Service) analyzeOne(ctx context.Context, sem *semaphore.Weighted, transcript string) domain.BatchItemResult {
	if err := sem.Acquire(ctx, 1); err != nil {
		return domain.BatchItemResult{Transcript: transcript, Err: err.Error()}
	}
	defer sem.Release(1)

	a, err := s.Analyze(ctx, transcript)
	if err != nil {
		return domain.BatchItemResult{Transcript: transcript, Err: err.Error()}
	}
	return domain.BatchItemResult{Transcript: transcript, Analysis: a}
}
