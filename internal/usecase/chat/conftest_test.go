package chat

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/domain/conversation"
	"github.com/kailas-cloud/propbot/internal/domain/relevance"
	"github.com/kailas-cloud/propbot/internal/usecase/retrieval"
)

type mockRetriever struct {
	collections []string
	listErr     error
	result      retrieval.Result
	err         error
	calls       int
	lastQuery   string
	lastCols    []string
}

func (m *mockRetriever) Collections(_ context.Context) ([]string, error) {
	return m.collections, m.listErr
}

func (m *mockRetriever) Retrieve(_ context.Context, query string, collections []string) (retrieval.Result, error) {
	m.calls++
	m.lastQuery = query
	m.lastCols = collections
	return m.result, m.err
}

type mockCompleter struct {
	answer      string
	err         error
	calls       int
	lastContent string
}

func (m *mockCompleter) Complete(_ context.Context, _, userContent string) (string, error) {
	m.calls++
	m.lastContent = userContent
	return m.answer, m.err
}

// mockSessionStore is a map-backed SessionStore.
type mockSessionStore struct {
	sessions  map[string]*conversation.Session
	getErr    error
	updateErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*conversation.Session)}
}

func (m *mockSessionStore) Get(_ context.Context, id string) (*conversation.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (m *mockSessionStore) Update(_ context.Context, id string, fn func(*conversation.Session)) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	sess, ok := m.sessions[id]
	if !ok {
		sess = conversation.New(id)
		m.sessions[id] = sess
	}
	fn(sess)
	return nil
}

func newTestService(t *testing.T, retriever *mockRetriever, completer *mockCompleter, sessions *mockSessionStore) *Service {
	t.Helper()
	normalizer := relevance.NewNormalizer(map[string]relevance.Metric{
		"properties":    relevance.L2,
		"neighborhoods": relevance.Cosine,
	})
	return NewService(sessions, retriever, completer, normalizer, "You are PropBot.", zap.NewNop())
}
