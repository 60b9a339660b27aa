package retrieval

import (
	"context"

	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/repository/vectorstore"
)

// Embedder produces query vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// VectorStore runs nearest-neighbour queries over named collections.
type VectorStore interface {
	ListCollections(ctx context.Context) ([]string, error)
	Query(ctx context.Context, collection string, embedding []float32, topK int) ([]vectorstore.Row, error)
}
