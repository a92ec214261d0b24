package analysis

import (
	"time"

	"github.com/google/uuid"
)

// MaxTranscriptSize is the largest accepted transcript, in UTF-8 bytes.
const MaxTranscriptSize = 100 * 1024

// Aggregate Root: TranscriptAnalysis. Immutable once created; the repository
// only accumulates records, it never updates or evicts them.
type TranscriptAnalysis struct {
	ID          uuid.UUID `json:"id"`
	Summary     string    `json:"summary"`
	NextActions []string  `json:"next_actions"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompletionResult is the structured shape the completion provider is asked
// to produce. Item order is presentation order.
type CompletionResult struct {
	Summary     string   `json:"summary"`
	ActionItems []string `json:"action_items"`
}

// BatchItemResult is the per-transcript outcome inside a batch: either a
// finished analysis or an error message, never both.
type BatchItemResult struct {
	Transcript string
	Analysis   *TranscriptAnalysis
	Err        string
}

func (r BatchItemResult) Success() bool { return r.Analysis != nil }
