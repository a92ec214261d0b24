package httpserver

import (
	"time"

	domain "transcript-insights/internal/domain/analysis"
)

// Wire DTOs. The domain's action items serialize as next_actions on the wire.

type analysisResponse struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	NextActions []string `json:"next_actions"`
	CreatedAt   string   `json:"created_at"`
}

func newAnalysisResponse(a *domain.TranscriptAnalysis) analysisResponse {
	return analysisResponse{
		ID:          a.ID.String(),
		Summary:     a.Summary,
		NextActions: a.NextActions,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339Nano),
	}
}

type batchRequest struct {
	Transcripts []string `json:"transcripts"`
}

type batchItemResponse struct {
	Transcript string            `json:"transcript"`
	Success    bool              `json:"success"`
	Analysis   *analysisResponse `json:"analysis,omitempty"`
	Error      string            `json:"error,omitempty"`
}

type batchResponse struct {
	Results         []batchItemResponse `json:"results"`
	TotalCount      int                 `json:"total_count"`
	SuccessfulCount int                 `json:"successful_count"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
