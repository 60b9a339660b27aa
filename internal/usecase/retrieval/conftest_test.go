package retrieval

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/repository/vectorstore"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockVectorStore struct {
	collections []string
	listErr     error
	queryFn     func(ctx context.Context, collection string, embedding []float32, topK int) ([]vectorstore.Row, error)
}

func (m *mockVectorStore) ListCollections(_ context.Context) ([]string, error) {
	return m.collections, m.listErr
}

func (m *mockVectorStore) Query(ctx context.Context, collection string, embedding []float32, topK int) ([]vectorstore.Row, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, collection, embedding, topK)
	}
	return nil, nil
}

func newTestService(t *testing.T, emb *mockEmbedder, store *mockVectorStore) *Service {
	t.Helper()
	return NewService(emb, store, 5, 20, testQueryTimeout, zap.NewNop())
}
