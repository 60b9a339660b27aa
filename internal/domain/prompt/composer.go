// Package prompt assembles the bounded context block handed to the
// language model. Every injected fragment is truncated independently,
// so the final size is predictable no matter how many turns or hits a
// request produced; the downstream completion call has a fixed token
// budget and must not be truncated at an arbitrary point.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/propbot/internal/domain/conversation"
	"github.com/kailas-cloud/propbot/internal/domain/hit"
	"github.com/kailas-cloud/propbot/internal/domain/property"
)

// Per-fragment budgets.
const (
	maxHistoryTurns   = 6
	turnCharBudget    = 80
	maxParsedRecords  = 5
	maxRawSnippets    = 3
	snippetCharBudget = 200
)

// Compose builds the model context from recent turns, the current
// query, and either parsed property records or raw document snippets.
func Compose(query string, turns []conversation.Turn, records []property.Record, hits []hit.Hit) string {
	var b strings.Builder

	if len(turns) > 0 {
		recent := turns
		if len(recent) > maxHistoryTurns {
			recent = recent[len(recent)-maxHistoryTurns:]
		}
		b.WriteString("Previous conversation:\n")
		for _, turn := range recent {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, truncate(turn.Content, turnCharBudget))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Current question: %s\n", query)

	renderable := renderableRecords(records)
	switch {
	case len(renderable) > 0:
		b.WriteString("\nRelevant properties found:\n")
		for i, rec := range renderable {
			fmt.Fprintf(&b, "%d. %s\n", i+1, FormatRecord(&rec))
		}
	case len(hits) > 0:
		b.WriteString("\nRelevant information:\n")
		n := len(hits)
		if n > maxRawSnippets {
			n = maxRawSnippets
		}
		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, "%d. %s\n", i+1, hits[i].Snippet(snippetCharBudget))
		}
	default:
		b.WriteString("\nNo matching data was found for this question.\n")
	}

	return b.String()
}

// FormatRecord renders one record as
// "address - $price - 3BR/2BA (TYPE) - 1450 sqft", omitting unset
// fields. The type is attached to the line with a space, not as a
// dash-joined part.
func FormatRecord(rec *property.Record) string {
	var parts []string

	if addr, ok := rec.Address(); ok {
		parts = append(parts, addr)
	}
	if price, ok := rec.Price(); ok {
		parts = append(parts, fmt.Sprintf("$%s", formatPrice(price)))
	}
	if beds, ok := rec.Beds(); ok {
		if baths, ok := rec.Baths(); ok {
			parts = append(parts, fmt.Sprintf("%dBR/%sBA", beds, formatBaths(baths)))
		} else {
			parts = append(parts, fmt.Sprintf("%dBR", beds))
		}
	}

	line := strings.Join(parts, " - ")
	if typ, ok := rec.PropertyType(); ok {
		if line == "" {
			line = fmt.Sprintf("(%s)", typ)
		} else {
			line += fmt.Sprintf(" (%s)", typ)
		}
	}
	if sqft, ok := rec.Sqft(); ok {
		if line == "" {
			line = fmt.Sprintf("%d sqft", sqft)
		} else {
			line += fmt.Sprintf(" - %d sqft", sqft)
		}
	}
	return line
}

// renderableRecords keeps records that have an address or price to show.
func renderableRecords(records []property.Record) []property.Record {
	out := make([]property.Record, 0, maxParsedRecords)
	for _, rec := range records {
		if !rec.HasIdentity() {
			continue
		}
		out = append(out, rec)
		if len(out) == maxParsedRecords {
			break
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so the cut never splits a multi-byte
	// character.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// formatPrice renders a price with thousands separators, no cents.
func formatPrice(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatBaths(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
