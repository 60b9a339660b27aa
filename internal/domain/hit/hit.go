// Package hit defines a single similarity-search result tagged with its
// source collection. Hits are ephemeral: created per query, never stored.
package hit

import "unicode/utf8"

// Hit is one retrieved document with its distance score.
type Hit struct {
	collection string
	id         string
	document   string
	metadata   map[string]any
	distance   float64
}

// New creates a hit.
func New(collection, id, document string, metadata map[string]any, distance float64) Hit {
	return Hit{
		collection: collection,
		id:         id,
		document:   document,
		metadata:   metadata,
		distance:   distance,
	}
}

// Collection returns the source collection name.
func (h *Hit) Collection() string { return h.collection }

// ID returns the document identifier.
func (h *Hit) ID() string { return h.id }

// Document returns the raw document text.
func (h *Hit) Document() string { return h.document }

// Metadata returns the document metadata.
func (h *Hit) Metadata() map[string]any { return h.metadata }

// Distance returns the dissimilarity score (lower is more similar).
func (h *Hit) Distance() float64 { return h.distance }

// Snippet returns the document text truncated to at most max bytes,
// never splitting a multi-byte character.
func (h *Hit) Snippet(max int) string {
	if len(h.document) <= max {
		return h.document
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(h.document[cut]) {
		cut--
	}
	return h.document[:cut]
}
