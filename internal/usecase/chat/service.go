package chat

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/propbot/internal/domain"
	"github.com/kailas-cloud/propbot/internal/domain/conversation"
	"github.com/kailas-cloud/propbot/internal/domain/hit"
	"github.com/kailas-cloud/propbot/internal/domain/intent"
	"github.com/kailas-cloud/propbot/internal/domain/property"
	"github.com/kailas-cloud/propbot/internal/domain/prompt"
	"github.com/kailas-cloud/propbot/internal/domain/relevance"
	"github.com/kailas-cloud/propbot/internal/domain/route"
	"github.com/kailas-cloud/propbot/internal/domain/validate"
	"github.com/kailas-cloud/propbot/internal/usecase/retrieval"
)

const (
	maxSources         = 5
	sourceSnippetChars = 150
)

// fallbackAnswer is returned when the completion provider fails; the
// user sees an apology, never a raw error.
const fallbackAnswer = "🏠 I'm sorry, I'm having trouble answering right now. " +
	"Please try asking your question again in a moment."

// Source is one retrieved document surfaced alongside the answer.
type Source struct {
	Collection string  `json:"collection"`
	Relevance  float64 `json:"relevance"`
	Snippet    string  `json:"snippet"`
}

// Response is the assembled chat answer.
type Response struct {
	Answer             string   `json:"answer"`
	ConversationID     string   `json:"conversation_id"`
	Sources            []Source `json:"sources"`
	DocumentsRetrieved int      `json:"documents_retrieved"`
}

// Service orchestrates one chat turn: validate, classify, retrieve,
// compose, synthesize, assemble, persist.
type Service struct {
	sessions     SessionStore
	retriever    Retriever
	completer    Completer
	normalizer   *relevance.Normalizer
	systemPrompt string
	logger       *zap.Logger
}

// NewService creates a chat service.
func NewService(
	sessions SessionStore,
	retriever Retriever,
	completer Completer,
	normalizer *relevance.Normalizer,
	systemPrompt string,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions:     sessions,
		retriever:    retriever,
		completer:    completer,
		normalizer:   normalizer,
		systemPrompt: systemPrompt,
		logger:       logger,
	}
}

// Chat answers one user query within a conversation. An empty
// conversationID starts a new conversation. The only error surfaced to
// the caller is a validation error carrying its corrective message;
// provider failures degrade to the fallback answer.
func (s *Service) Chat(ctx context.Context, query, conversationID string) (Response, error) {
	clean, err := validate.Query(query)
	if err != nil {
		return Response{}, err
	}

	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	history, memory := s.loadSession(ctx, conversationID)

	in := intent.Classify(clean, memory)
	if in.Type == intent.Greeting {
		answer := greetingReply(in.Name)
		s.persist(ctx, conversationID, clean, answer, intent.Filters{}, false)
		return Response{
			Answer:         answer,
			ConversationID: conversationID,
			Sources:        []Source{},
		}, nil
	}

	result := s.retrieve(ctx, clean)

	records := parseRecords(result.Hits)
	userContent := prompt.Compose(clean, history, records, result.Hits)

	answer, err := s.completer.Complete(ctx, s.systemPrompt, userContent)
	if err != nil {
		s.logger.Error("Answer synthesis failed", zap.Error(err))
		s.persist(ctx, conversationID, clean, fallbackAnswer, in.Filters, true)
		return Response{
			Answer:         fallbackAnswer,
			ConversationID: conversationID,
			Sources:        []Source{},
		}, nil
	}

	s.persist(ctx, conversationID, clean, answer, in.Filters, true)

	return Response{
		Answer:             answer,
		ConversationID:     conversationID,
		Sources:            s.buildSources(result.Hits),
		DocumentsRetrieved: len(result.Hits),
	}, nil
}

// loadSession fetches history and filter memory; a missing or failing
// session degrades to a stateless turn.
func (s *Service) loadSession(ctx context.Context, id string) ([]conversation.Turn, *intent.Memory) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("Session lookup failed", zap.String("conversation_id", id), zap.Error(err))
		}
		return nil, nil
	}
	return sess.Recent(conversation.MaxTurns), sess.Memory()
}

// retrieve selects collections and runs the search. Failures are
// logged and degrade to an empty result.
func (s *Service) retrieve(ctx context.Context, query string) retrieval.Result {
	available, err := s.retriever.Collections(ctx)
	if err != nil {
		s.logger.Warn("Listing collections failed", zap.Error(err))
	}

	collections := route.Select(query, available)
	if len(collections) == 0 {
		return retrieval.Result{}
	}

	result, err := s.retriever.Retrieve(ctx, query, collections)
	if err != nil {
		s.logger.Warn("Retrieval failed", zap.Error(err))
		return retrieval.Result{}
	}
	return result
}

// parseRecords extracts structured property records from hits,
// applying display defaults to the ones with a usable identity.
func parseRecords(hits []hit.Hit) []property.Record {
	var records []property.Record
	for i := range hits {
		rec := property.Parse(hits[i].Document())
		if !rec.HasIdentity() {
			continue
		}
		records = append(records, rec.WithDisplayDefaults())
	}
	return records
}

func (s *Service) buildSources(hits []hit.Hit) []Source {
	n := len(hits)
	if n > maxSources {
		n = maxSources
	}
	sources := make([]Source, 0, n)
	for i := 0; i < n; i++ {
		sources = append(sources, Source{
			Collection: hits[i].Collection(),
			Relevance:  math.Round(s.normalizer.Score(hits[i].Collection(), hits[i].Distance())*10) / 10,
			Snippet:    hits[i].Snippet(sourceSnippetChars),
		})
	}
	return sources
}

// persist records the turn pair and, for retrieval turns, the filter
// memory. Persistence failures never fail the request.
func (s *Service) persist(ctx context.Context, id, query, answer string, filters intent.Filters, searched bool) {
	err := s.sessions.Update(ctx, id, func(sess *conversation.Session) {
		sess.Append(conversation.RoleUser, query)
		sess.Append(conversation.RoleAssistant, answer)
		if searched {
			sess.RememberSearch(filters)
		}
	})
	if err != nil {
		s.logger.Warn("Session persist failed", zap.String("conversation_id", id), zap.Error(err))
	}
}

func greetingReply(name string) string {
	if name != "" {
		return fmt.Sprintf(
			"Hello %s! I'm PropBot, your Boston real estate assistant. "+
				"Ask me about properties, neighborhoods, schools, or safety anywhere in Boston.",
			name,
		)
	}
	return "Hello! I'm PropBot, your Boston real estate assistant. " +
		"Ask me about properties, neighborhoods, schools, or safety anywhere in Boston."
}
