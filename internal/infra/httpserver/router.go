package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appanalysis "transcript-insights/internal/application/analysis"
	domain "transcript-insights/internal/domain/analysis"
	"transcript-insights/internal/middleware"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "transcript-insights-api"

const (
	minBatchSize = 1
	maxBatchSize = 10
)

type Router struct {
	svc *appanalysis.Service
	log *logrus.Entry
}

func NewRouter(svc *appanalysis.Service, checkers map[string]middleware.HealthChecker, log *logrus.Entry) http.Handler {
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.TrackRequests)

	mux.Get("/health", middleware.HealthHandler(ServiceName, checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Get("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses/{id}", r.wrap(r.handleGetAnalysis))
		rt.Post("/analyses/batch", r.wrap(r.handleAnalyzeBatch))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps the closed domain error taxonomy onto status codes. Anything
// outside the taxonomy is logged in full and surfaced as an opaque 500.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var badReq *badRequestError
		var tooLarge *domain.TooLargeError
		var provider *domain.ProviderError
		var notFound *domain.NotFoundError

		switch {
		case errors.Is(err, domain.ErrEmptyTranscript):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &badReq):
			writeError(w, http.StatusUnprocessableEntity, badReq.Error())
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, tooLarge.Error())
		case errors.Is(err, domain.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, domain.ErrTimeout):
			writeError(w, http.StatusGatewayTimeout, err.Error())
		case errors.As(err, &provider):
			writeError(w, http.StatusBadGateway, provider.Error())
		case errors.As(err, &notFound):
			writeError(w, http.StatusNotFound, notFound.Error())
		default:
			r.log.WithError(err).WithFields(logrus.Fields{
				"method": req.Method,
				"path":   req.URL.Path,
			}).Error("unexpected error")
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

// badRequestError marks malformed request input, mapped to 422.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

// GET /api/v1/analyze?transcript=...
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	if !req.URL.Query().Has("transcript") {
		return &badRequestError{msg: "query parameter transcript is required"}
	}

	a, err := r.svc.Analyze(req.Context(), req.URL.Query().Get("transcript"))
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	middleware.IncrementAnalyses()

	return writeJSON(w, http.StatusOK, newAnalysisResponse(a))
}

// GET /api/v1/analyses/{id}
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		return &badRequestError{msg: "id must be a valid UUID"}
	}

	a, err := r.svc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, newAnalysisResponse(a))
}

// POST /api/v1/analyses/batch
// The batch itself always succeeds once its shape is valid; failures are
// reported per item.
func (r *Router) handleAnalyzeBatch(w http.ResponseWriter, req *http.Request) error {
	var body batchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return &badRequestError{msg: "invalid request body: " + err.Error()}
	}
	if n := len(body.Transcripts); n < minBatchSize || n > maxBatchSize {
		return &badRequestError{msg: fmt.Sprintf("transcripts must contain between %d and %d items", minBatchSize, maxBatchSize)}
	}

	middleware.IncrementBatches()
	results := r.svc.AnalyzeBatch(req.Context(), body.Transcripts)

	resp := batchResponse{
		Results:    make([]batchItemResponse, 0, len(results)),
		TotalCount: len(results),
	}
	for _, res := range results {
		item := batchItemResponse{Transcript: res.Transcript, Success: res.Success()}
		if res.Success() {
			a := newAnalysisResponse(res.Analysis)
			item.Analysis = &a
			resp.SuccessfulCount++
			middleware.IncrementAnalyses()
		} else {
			item.Error = res.Err
			middleware.IncrementAnalysesFailed()
		}
		resp.Results = append(resp.Results, item)
	}

	return writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
