// Package health implements the readiness probe: the vector store must
// answer a listing call and the embedding provider must be reachable.
package health

import (
	"context"

	"go.uber.org/zap"
)

// VectorStore is the probe surface of the vector store.
type VectorStore interface {
	ListCollections(ctx context.Context) ([]string, error)
}

// EmbedderChecker is the probe surface of the embedding provider.
type EmbedderChecker interface {
	HealthCheck(ctx context.Context) error
}

// Status is the health report returned to callers.
type Status struct {
	Healthy     string `json:"status"`
	VectorStore string `json:"vector_store"`
	Embedder    string `json:"embedding_provider"`
	Collections int    `json:"collections"`
}

// Service checks the liveness of the pipeline's collaborators.
type Service struct {
	store    VectorStore
	embedder EmbedderChecker
	logger   *zap.Logger
}

// NewService creates a health service.
func NewService(store VectorStore, embedder EmbedderChecker, logger *zap.Logger) *Service {
	return &Service{store: store, embedder: embedder, logger: logger}
}

// Check probes each collaborator and reports a combined status. It
// never returns an error; degradation is encoded in the Status.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{
		Healthy:     "ok",
		VectorStore: "ok",
		Embedder:    "ok",
	}

	cols, err := s.store.ListCollections(ctx)
	if err != nil {
		s.logger.Warn("Vector store health check failed", zap.Error(err))
		st.VectorStore = "unreachable"
		st.Healthy = "degraded"
	} else {
		st.Collections = len(cols)
	}

	if err := s.embedder.HealthCheck(ctx); err != nil {
		s.logger.Warn("Embedding provider health check failed", zap.Error(err))
		st.Embedder = "unreachable"
		st.Healthy = "degraded"
	}

	return st
}
