package analysis

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "transcript-insights/internal/domain/analysis"
)

func TestAnalyzeBatch_AllValid(t *testing.T) {
	completer := &fakeCompleter{
		fn: func(_ context.Context, _, userPrompt string) (*domain.CompletionResult, error) {
			return &domain.CompletionResult{Summary: "summary for: " + userPrompt}, nil
		},
	}
	repo := newFakeRepo()
	svc := newTestService(completer, repo)

	transcripts := []string{"first call", "second call", "third call"}
	results := svc.AnalyzeBatch(context.Background(), transcripts)

	require.Len(t, results, len(transcripts))
	for i, res := range results {
		assert.Equal(t, transcripts[i], res.Transcript, "results must keep input order")
		require.True(t, res.Success())
		assert.Empty(t, res.Err)
		assert.Contains(t, res.Analysis.Summary, transcripts[i])
	}

	count, _ := repo.Count(context.Background())
	assert.Equal(t, len(transcripts), count)
}

func TestAnalyzeBatch_FailuresAreIsolated(t *testing.T) {
	svc := newTestService(&fakeCompleter{}, newFakeRepo())

	results := svc.AnalyzeBatch(context.Background(), []string{"Hello world", "", "Another valid one"})

	require.Len(t, results, 3)

	assert.True(t, results[0].Success())
	assert.True(t, results[2].Success())

	require.False(t, results[1].Success())
	assert.Nil(t, results[1].Analysis)
	assert.Equal(t, domain.ErrEmptyTranscript.Error(), results[1].Err)

	successful := 0
	for _, r := range results {
		if r.Success() {
			successful++
		}
	}
	assert.Equal(t, 2, successful)
}

func TestAnalyzeBatch_ProviderFailureDoesNotCancelSiblings(t *testing.T) {
	completer := &fakeCompleter{
		fn: func(_ context.Context, _, userPrompt string) (*domain.CompletionResult, error) {
			// the prompt embeds the transcript, so this targets one item only
			if len(userPrompt) > 0 && userPrompt[len(userPrompt)-1] == '2' {
				return nil, domain.ErrRateLimited
			}
			return &domain.CompletionResult{Summary: "fine"}, nil
		},
	}
	svc := newTestService(completer, newFakeRepo())

	results := svc.AnalyzeBatch(context.Background(), []string{"call 1", "call 2", "call 3"})

	require.Len(t, results, 3)
	assert.True(t, results[0].Success())
	assert.False(t, results[1].Success())
	assert.Equal(t, domain.ErrRateLimited.Error(), results[1].Err)
	assert.True(t, results[2].Success())
}

func TestAnalyzeBatch_ConcurrencyCap(t *testing.T) {
	var inFlight, maxInFlight int64

	completer := &fakeCompleter{
		fn: func(context.Context, string, string) (*domain.CompletionResult, error) {
			cur := atomic.AddInt64(&inFlight, 1)
			for {
				max := atomic.LoadInt64(&maxInFlight)
				if cur <= max || atomic.CompareAndSwapInt64(&maxInFlight, max, cur) {
					break
				}
			}
			time.Sleep(30 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return &domain.CompletionResult{Summary: "ok"}, nil
		},
	}
	svc := newTestService(completer, newFakeRepo())

	transcripts := make([]string, 10)
	for i := range transcripts {
		transcripts[i] = fmt.Sprintf("transcript %d", i)
	}

	results := svc.AnalyzeBatch(context.Background(), transcripts)

	require.Len(t, results, 10)
	assert.Equal(t, 10, completer.callCount())
	assert.LessOrEqual(t, atomic.LoadInt64(&maxInFlight), int64(maxConcurrentCompletions),
		"no more than %d provider calls may be in flight", maxConcurrentCompletions)
	assert.Greater(t, atomic.LoadInt64(&maxInFlight), int64(1),
		"items must actually overlap, not run serially")
}

func TestAnalyzeBatch_SingleItem(t *testing.T) {
	svc := newTestService(&fakeCompleter{}, newFakeRepo())

	results := svc.AnalyzeBatch(context.Background(), []string{"only one"})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success())
}

func TestAnalyzeBatch_CancelledContextFailsItemsNotBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	completer := &fakeCompleter{}
	svc := newTestService(completer, newFakeRepo())

	results := svc.AnalyzeBatch(ctx, []string{"a", "b", "c", "d", "e", "f"})

	require.Len(t, results, 6)
	for _, res := range results {
		assert.NotEmpty(t, res.Err)
		assert.Nil(t, res.Analysis)
	}
}
