// Package validate gates user input before it reaches retrieval.
// Rejections carry a user-facing corrective message, never a stack of
// internals.
package validate

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/propbot/internal/domain"
)

// MaxQueryLength is the maximum accepted query size in characters.
const MaxQueryLength = 500

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|EXECUTE)\b`),
	regexp.MustCompile(`(--|;|/\*|\*/|xp_|sp_)`),
	regexp.MustCompile(`(?i)\bUNION\b.*\bSELECT\b`),
}

var (
	reSymbolsOnly = regexp.MustCompile(`^[^a-zA-Z0-9\s]+$`)
	reSpaces      = regexp.MustCompile(`\s+`)
	reStripChars  = regexp.MustCompile(`[<>{}]`)
)

// Query validates and sanitizes a chat query. On success it returns the
// sanitized text; on failure a domain.ValidationError with a corrective
// message.
func Query(raw string) (string, error) {
	q := strings.TrimSpace(raw)

	if q == "" {
		return "", domain.NewValidationError(
			`Query cannot be empty. Try: "Show me properties in Back Bay"`)
	}
	if len(q) > MaxQueryLength {
		return "", domain.NewValidationError(
			"Query too long (max 500 characters). Please shorten your question.")
	}
	for _, re := range injectionPatterns {
		if re.MatchString(q) {
			return "", domain.NewValidationError(
				"Invalid query. Please ask about properties naturally.")
		}
	}
	if reSymbolsOnly.MatchString(q) {
		return "", domain.NewValidationError(
			"Please use words to describe what you're looking for!")
	}

	q = reSpaces.ReplaceAllString(q, " ")
	q = reStripChars.ReplaceAllString(q, "")
	return q, nil
}
