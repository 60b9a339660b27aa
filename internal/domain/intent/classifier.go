package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// maxGreetingWords bounds how long a query can be and still count as a
// greeting. Long messages always carry real intent.
const maxGreetingWords = 20

// cheaperPriceFactor is the ceiling reduction applied when a follow-up
// asks for cheaper options relative to the previous search.
const cheaperPriceFactor = 0.8

var greetingWords = []string{
	"hi", "hello", "hey", "good morning", "good afternoon",
	"good evening", "greetings", "sup", "yo", "hii", "hiii",
}

// propertyKeywords veto greeting classification. "hi, show me 3BR in
// Back Bay" must route to retrieval, not the canned reply.
var propertyKeywords = []string{
	"property", "properties", "home", "house", "apartment", "condo",
	"bedroom", "bathroom", "rent", "rental", "lease", "buy", "purchase",
	"price", "neighborhood", "location", "show", "find", "search",
	"looking", "near",
}

var rentalKeywords = []string{"rent", "rental", "lease"}
var buyKeywords = []string{"buy", "purchase", "for sale"}
var compareKeywords = []string{"compare", " vs ", " versus "}

var cheaperCues = []string{"cheaper", "affordable", "less expensive", "lower price"}
var similarCues = []string{"similar", "same area", "same neighborhood", "like that"}

// neighborhoods is the Boston gazetteer used for substring matching.
var neighborhoods = []string{
	"back bay", "beacon hill", "south end", "north end", "dorchester",
	"roxbury", "jamaica plain", "charlestown", "east boston", "allston",
	"brighton", "fenway", "south boston", "seaport", "west end",
}

var (
	reIntro    = regexp.MustCompile(`\b(?:my name is|i am|i'm|this is|im)\s+([a-zA-Z][a-zA-Z0-9]*)`)
	reBedrooms = regexp.MustCompile(`(\d+)\s*(?:br\b|beds?\b|bedrooms?\b)`)
	rePriceK   = regexp.MustCompile(`\$?(\d+(?:\.\d+)?)k\b`)
	rePriceUSD = regexp.MustCompile(`\$(\d{4,})\b`)
)

// Classify determines the intent of a query. prev carries the previous
// turn's filter memory for relative-reference resolution; nil means no
// prior context.
func Classify(query string, prev *Memory) Intent {
	lower := strings.ToLower(strings.TrimSpace(query))
	words := len(strings.Fields(lower))

	hasProperty := containsAny(lower, propertyKeywords)

	if !hasProperty && words <= maxGreetingWords && isGreetingShaped(lower) {
		return Intent{Type: Greeting, Name: extractName(lower)}
	}

	in := Intent{Type: typeOf(lower)}
	in.Filters = extractFilters(lower)

	if prev != nil {
		if containsAny(lower, cheaperCues) && !prev.LastFilters.IsZero() {
			carried := prev.LastFilters
			if in.Filters.Bedrooms != 0 {
				carried.Bedrooms = in.Filters.Bedrooms
			}
			if in.Filters.Neighborhood != "" {
				carried.Neighborhood = in.Filters.Neighborhood
			}
			if carried.MaxPrice > 0 {
				carried.MaxPrice *= cheaperPriceFactor
			}
			in.Filters = carried
			in.ContextUsed = true
		}
		if containsAny(lower, similarCues) && prev.LastNeighborhood != "" && in.Filters.Neighborhood == "" {
			in.Filters.Neighborhood = prev.LastNeighborhood
			in.ContextUsed = true
		}
	}

	return in
}

// isGreetingShaped reports whether the query opens with a greeting word
// or contains an introduction pattern.
func isGreetingShaped(lower string) bool {
	for _, g := range greetingWords {
		if lower == g || strings.HasPrefix(lower, g+" ") || strings.HasPrefix(lower, g+",") ||
			strings.HasPrefix(lower, g+"!") {
			return true
		}
	}
	return reIntro.MatchString(lower)
}

// extractName pulls a display name out of an introduction pattern.
// Returns "" when no pattern matches.
func extractName(lower string) string {
	m := reIntro.FindStringSubmatch(lower)
	if m == nil {
		return ""
	}
	name := strings.Trim(m[1], `.,!?'"`)
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func typeOf(lower string) Type {
	switch {
	case containsAny(lower, compareKeywords):
		return Compare
	case containsAny(lower, rentalKeywords):
		return Rental
	case containsAny(lower, buyKeywords):
		return Buy
	default:
		return General
	}
}

func extractFilters(lower string) Filters {
	var f Filters

	if m := reBedrooms.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			f.Bedrooms = n
		}
	}

	if m := rePriceK.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MaxPrice = v * 1000
		}
	} else if m := rePriceUSD.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			f.MaxPrice = v
		}
	}

	for _, hood := range neighborhoods {
		if strings.Contains(lower, hood) {
			f.Neighborhood = hood
			break
		}
	}

	return f
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
