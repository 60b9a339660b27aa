package retrieval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain/hit"
	"github.com/kailas-cloud/propbot/internal/metrics"
	"github.com/kailas-cloud/propbot/internal/repository/vectorstore"
)

// Result is the merged outcome of a multi-collection retrieval.
type Result struct {
	Hits    []hit.Hit
	Queried []string
	Failed  []string
}

// Service embeds a query once and fans it out across collections,
// merging per-collection matches into one distance-ordered list.
type Service struct {
	embedder     Embedder
	store        VectorStore
	topK         int
	maxResults   int
	queryTimeout time.Duration
	logger       *zap.Logger
}

// NewService creates a retrieval service. topK is the neighbour count
// requested per collection; maxResults bounds the merged list.
func NewService(
	embedder Embedder,
	store VectorStore,
	topK int,
	maxResults int,
	queryTimeout time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		embedder:     embedder,
		store:        store,
		topK:         topK,
		maxResults:   maxResults,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// Collections lists the collections available on the vector store.
func (s *Service) Collections(ctx context.Context) ([]string, error) {
	return s.store.ListCollections(ctx)
}

// Retrieve embeds the query and searches each collection in turn.
// A failing collection is logged, counted in Failed, and skipped;
// the overall retrieval errors only when embedding itself fails.
func (s *Service) Retrieve(ctx context.Context, query string, collections []string) (Result, error) {
	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}

	result := Result{Queried: collections}
	for _, collection := range collections {
		rows, err := s.queryCollection(ctx, collection, emb.Embedding)
		if err != nil {
			metrics.RetrievalCollectionsTotal.WithLabelValues(collection, "error").Inc()
			s.logger.Warn("Collection query failed, skipping",
				zap.String("collection", collection),
				zap.Error(err))
			result.Failed = append(result.Failed, collection)
			continue
		}

		metrics.RetrievalCollectionsTotal.WithLabelValues(collection, "success").Inc()
		for _, row := range rows {
			result.Hits = append(result.Hits,
				hit.New(collection, row.ID, row.Document, row.Metadata, row.Distance))
		}
	}

	// Stable sort keeps the collection query order for equal distances.
	sort.SliceStable(result.Hits, func(i, j int) bool {
		return result.Hits[i].Distance() < result.Hits[j].Distance()
	})
	if s.maxResults > 0 && len(result.Hits) > s.maxResults {
		result.Hits = result.Hits[:s.maxResults]
	}

	metrics.RetrievalHits.WithLabelValues().Observe(float64(len(result.Hits)))
	return result, nil
}

func (s *Service) queryCollection(ctx context.Context, collection string, embedding []float32) ([]vectorstore.Row, error) {
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.store.Query(qctx, collection, embedding, s.topK)
}
