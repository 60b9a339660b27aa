package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain"
)

// Row is a single similarity match returned by a collection query.
type Row struct {
	ID       string
	Document string
	Metadata map[string]any
	Distance float64
}

// Store adapts a Chroma HTTP client to the retrieval layer.
type Store struct {
	client chromago.Client
	logger *zap.Logger
}

// New connects to a Chroma server at baseURL.
func New(baseURL string, logger *zap.Logger) (*Store, error) {
	client, err := chromago.NewHTTPClient(chromago.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("create chroma client: %w", err)
	}
	return &Store{client: client, logger: logger}, nil
}

// ListCollections returns the names of every collection on the server.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	cols, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	names := make([]string, 0, len(cols))
	for _, col := range cols {
		names = append(names, col.Name())
	}
	return names, nil
}

// Query runs a nearest-neighbour search over one collection.
func (s *Store) Query(ctx context.Context, collection string, embedding []float32, topK int) ([]Row, error) {
	col, err := s.client.GetCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrCollectionNotFound)
	}

	results, err := col.Query(ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(embedding)),
		chromago.WithNResults(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("query collection %q: %w", collection, err)
	}

	docGroups := results.GetDocumentsGroups()
	metaGroups := results.GetMetadatasGroups()
	idGroups := results.GetIDGroups()
	distGroups := results.GetDistancesGroups()

	if len(docGroups) == 0 {
		return nil, nil
	}

	docs := docGroups[0]
	rows := make([]Row, 0, len(docs))
	for i, doc := range docs {
		row := Row{Document: doc.ContentString()}
		if len(idGroups) > 0 && i < len(idGroups[0]) {
			row.ID = string(idGroups[0][i])
		}
		if len(distGroups) > 0 && i < len(distGroups[0]) {
			row.Distance = float64(distGroups[0][i])
		}
		if len(metaGroups) > 0 && i < len(metaGroups[0]) {
			row.Metadata = metadataToMap(metaGroups[0][i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close releases the underlying HTTP client.
func (s *Store) Close() error {
	return s.client.Close()
}

// metadataToMap converts Chroma document metadata into a plain map.
// DocumentMetadata has no map accessor, so it round-trips through JSON.
func metadataToMap(meta chromago.DocumentMetadata) map[string]any {
	if meta == nil {
		return nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
