package chat

import (
	"context"

	"github.com/kailas-cloud/propbot/internal/domain/conversation"
	"github.com/kailas-cloud/propbot/internal/usecase/retrieval"
)

// Retriever runs multi-collection similarity search.
type Retriever interface {
	Collections(ctx context.Context) ([]string, error)
	Retrieve(ctx context.Context, query string, collections []string) (retrieval.Result, error)
}

// Completer synthesizes the final answer from a composed context.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// SessionStore persists conversation state. Update serializes
// read-modify-write per session so concurrent turns are not lost.
type SessionStore interface {
	Get(ctx context.Context, id string) (*conversation.Session, error)
	Update(ctx context.Context, id string, fn func(*conversation.Session)) error
}
