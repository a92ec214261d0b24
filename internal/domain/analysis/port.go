package analysis

import (
	"context"

	"github.com/google/uuid"
)

// Completer port (interface to the external completion provider).
// Implementations translate provider failures into this package's error
// taxonomy: ErrRateLimited, ErrTimeout, or ProviderError.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (*CompletionResult, error)
}

// Repository port (interface for analysis storage).
// Get returns (nil, nil) when no record exists under id; deciding whether
// absence is an error belongs to the caller.
type Repository interface {
	Save(ctx context.Context, a *TranscriptAnalysis) error
	Get(ctx context.Context, id uuid.UUID) (*TranscriptAnalysis, error)
	GetAll(ctx context.Context) ([]*TranscriptAnalysis, error)
	Count(ctx context.Context) (int, error)
}
