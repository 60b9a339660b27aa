package domain

import "context"

// Completer is the answer-synthesis contract. The core treats the
// language model as opaque: system prompt and user content go in,
// free text comes out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
