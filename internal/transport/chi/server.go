// Package chi exposes the HTTP API: chat, health, sample queries, and
// Prometheus metrics. Handlers map transport concerns only; all
// behavior lives in the usecases.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain"
	chatuc "github.com/kailas-cloud/propbot/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/propbot/internal/usecase/health"
)

// sampleQueries is the canned starter list served to fresh clients.
var sampleQueries = []string{
	"Show me 3 bedroom properties in Back Bay under $1M",
	"What's the crime rate in Beacon Hill?",
	"Compare properties in South End vs Dorchester",
	"Find me a luxury condo with 2 bathrooms",
	"What's a good neighborhood for families?",
	"Properties near T stations",
	"Investment opportunities in Boston",
	"Affordable housing in safe neighborhoods",
}

// Server holds the HTTP handlers.
type Server struct {
	chat   *chatuc.Service
	health *healthuc.Service
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(chat *chatuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	return &Server{chat: chat, health: health, logger: logger}
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/chat", s.Chat)
	r.Get("/health", s.HealthCheck)
	r.Get("/sample-queries", s.SampleQueries)
	r.Get("/metrics", s.Metrics)
}

type chatRequest struct {
	Query          string `json:"query"`
	ConversationID string `json:"conversation_id"`
}

// Chat handles POST /chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.chat.Chat(r.Context(), req.Query, req.ConversationID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	st := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if st.Healthy != "ok" {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, st)
}

// SampleQueries handles GET /sample-queries.
func (s *Server) SampleQueries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"queries": sampleQueries})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "invalid_query", verr.Message)
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		writeError(w, http.StatusBadGateway, "embedding_provider_error", domain.ErrEmbeddingProviderError.Error())
	case errors.Is(err, domain.ErrCompletionProviderError):
		writeError(w, http.StatusBadGateway, "completion_provider_error", domain.ErrCompletionProviderError.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", domain.ErrNotFound.Error())
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"code":    code,
		"message": message,
	})
}
