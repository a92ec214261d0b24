package analysis

import (
	"errors"
	"fmt"
)

// ErrEmptyTranscript indicates an empty or whitespace-only transcript.
var ErrEmptyTranscript = errors.New("transcript must not be empty")

// ErrRateLimited indicates the completion provider returned a rate-limit error (HTTP 429 or similar).
var ErrRateLimited = errors.New("completion provider rate limit exceeded")

// ErrTimeout indicates the completion provider did not answer within the per-call deadline.
var ErrTimeout = errors.New("completion provider request timed out")

// TooLargeError carries the offending size alongside the limit.
type TooLargeError struct {
	Size    int
	MaxSize int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("transcript size %d exceeds maximum allowed size %d", e.Size, e.MaxSize)
}

// NotFoundError indicates no analysis exists under the requested id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("analysis with id %s not found", e.ID)
}

// ProviderError wraps any other service-level failure from the completion provider.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return "completion provider error: " + e.Message
}
