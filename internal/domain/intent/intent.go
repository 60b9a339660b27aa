// Package intent classifies a chat query: greeting and small talk are
// answered without retrieval, everything else is typed and mined for
// structured search filters.
package intent

// Type is the query intent category.
type Type string

const (
	General  Type = "general"
	Rental   Type = "rental"
	Buy      Type = "buy"
	Compare  Type = "compare"
	Greeting Type = "greeting"
)

// Filters are structured constraints extracted from the query text.
// Zero values mean "not specified".
type Filters struct {
	Bedrooms     int
	MaxPrice     float64
	Neighborhood string
}

// IsZero reports whether no filter was extracted.
func (f Filters) IsZero() bool {
	return f.Bedrooms == 0 && f.MaxPrice == 0 && f.Neighborhood == ""
}

// Memory is the prior-turn context consulted for relative references
// ("cheaper", "same area"). Nil memory disables carry-forward.
type Memory struct {
	LastFilters      Filters
	LastNeighborhood string
}

// Intent is the classification result for one query.
type Intent struct {
	Type        Type
	Filters     Filters
	ContextUsed bool
	// Name is a display name extracted from an introduction pattern,
	// used only to personalize the greeting reply.
	Name string
}
