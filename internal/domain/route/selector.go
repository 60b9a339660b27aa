// Package route maps a free-text query to the vector collections worth
// searching. Keyword routing is cheap and interpretable, and bounds the
// number of similarity queries issued per request.
package route

import "strings"

// MaxCollections caps how many collections a single query may fan out to.
const MaxCollections = 6

// rule pairs a keyword set with the collections it routes to.
type rule struct {
	keywords    []string
	collections []string
}

// Routing table, scanned in order; first-match order is preserved in the
// output and later becomes the retrieval tie-break priority.
var rules = []rule{
	{
		keywords:    []string{"crime", "safety", "safe", "dangerous"},
		collections: []string{"crime", "boston_crime"},
	},
	{
		keywords:    []string{"neighborhood", "area", "community", "best place"},
		collections: []string{"neighborhoods", "demographics"},
	},
	{
		keywords:    []string{"school", "education"},
		collections: []string{"schools"},
	},
	{
		keywords:    []string{"restaurant", "shop", "park", "gym", "cafe"},
		collections: []string{"amenities", "parks"},
	},
	{
		keywords:    []string{"transit", "subway", "train", "bus", "mbta"},
		collections: []string{"transit"},
	},
	{
		keywords: []string{
			"property", "home", "house", "condo", "apartment",
			"rent", "buy", "bedroom", "price",
		},
		collections: []string{"properties", "boston_properties", "listings"},
	},
}

// defaults are the property collections used when no keyword matches.
var defaults = []string{"properties", "boston_properties"}

// Select returns the ordered collections to search for the query,
// restricted to the available set and capped at MaxCollections. Unknown
// vocabulary degrades to the default property collections; when
// available is non-empty the result is never empty.
func Select(query string, available []string) []string {
	lower := strings.ToLower(query)

	var candidates []string
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				candidates = append(candidates, r.collections...)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = defaults
	}

	exists := make(map[string]bool, len(available))
	for _, name := range available {
		exists[name] = true
	}

	seen := make(map[string]bool, len(candidates))
	selected := make([]string, 0, MaxCollections)
	for _, name := range candidates {
		if seen[name] || !exists[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, name)
		if len(selected) == MaxCollections {
			return selected
		}
	}

	// Keyword hits routed only to collections that don't exist; fall back
	// to the defaults before giving up entirely.
	if len(selected) == 0 {
		for _, name := range defaults {
			if exists[name] {
				selected = append(selected, name)
			}
		}
	}
	if len(selected) == 0 {
		for _, name := range available {
			selected = append(selected, name)
			if len(selected) == MaxCollections {
				break
			}
		}
	}
	return selected
}
