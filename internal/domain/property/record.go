// Package property parses heterogeneously formatted listing documents
// into structured records. The corpus mixes assessor-style dot-joined
// sentences and CSV-dump key-path text, so parsing is a strategy
// cascade rather than a single format.
package property

import (
	"fmt"
	"math"
	"strings"
)

// Display defaults applied only at presentation time, never at parse
// time. The legacy assessor pipeline always wants a renderable stub.
const (
	DefaultAddress = "Address not available"
	DefaultType    = "RESIDENTIAL"
	DefaultBeds    = 2
	DefaultBaths   = 1.0
	DefaultPrice   = 650000.0
)

// Record is a parsed property document. Every field is independently
// optional; a record with no fields set is "unparsed" and callers fall
// back to the raw document snippet.
type Record struct {
	address      *string
	propertyType *string
	beds         *int
	baths        *float64
	price        *float64
	sqft         *int
}

// Address returns the street address, if parsed.
func (r *Record) Address() (string, bool) { return strVal(r.address) }

// PropertyType returns the dwelling type, if parsed.
func (r *Record) PropertyType() (string, bool) { return strVal(r.propertyType) }

// Beds returns the bedroom count, if parsed.
func (r *Record) Beds() (int, bool) { return intVal(r.beds) }

// Baths returns the bathroom count, if parsed.
func (r *Record) Baths() (float64, bool) { return floatVal(r.baths) }

// Price returns the listed or assessed price, if parsed.
func (r *Record) Price() (float64, bool) { return floatVal(r.price) }

// Sqft returns the living area in square feet, if parsed.
func (r *Record) Sqft() (int, bool) { return intVal(r.sqft) }

// IsEmpty reports whether no field was parsed.
func (r *Record) IsEmpty() bool {
	return r.address == nil && r.propertyType == nil && r.beds == nil &&
		r.baths == nil && r.price == nil && r.sqft == nil
}

// HasIdentity reports whether the record carries enough to show a user:
// an address or a price.
func (r *Record) HasIdentity() bool {
	return r.address != nil || r.price != nil
}

// WithDisplayDefaults returns a copy with unset core fields replaced by
// the legacy display defaults.
func (r Record) WithDisplayDefaults() Record {
	out := r
	if out.address == nil {
		out.address = strPtr(DefaultAddress)
	}
	if out.propertyType == nil {
		out.propertyType = strPtr(DefaultType)
	}
	if out.beds == nil {
		b := DefaultBeds
		out.beds = &b
	}
	if out.baths == nil {
		b := DefaultBaths
		out.baths = &b
	}
	if out.price == nil {
		p := DefaultPrice
		out.price = &p
	}
	return out
}

// Assessor renders the record in the period-delimited assessor field
// order (address. type. beds. baths. price). Unset fields render empty.
// The assessor format carries whole-number fields only, so fractional
// baths and prices are rounded; re-parsing the output yields the same
// set of non-empty fields.
func (r *Record) Assessor() string {
	fields := []string{
		orEmpty(r.address),
		orEmpty(r.propertyType),
	}
	if r.beds != nil {
		fields = append(fields, fmt.Sprintf("%d", *r.beds))
	} else {
		fields = append(fields, "")
	}
	if r.baths != nil {
		fields = append(fields, wholeFloat(*r.baths))
	} else {
		fields = append(fields, "")
	}
	if r.price != nil {
		fields = append(fields, wholeFloat(*r.price))
	} else {
		fields = append(fields, "")
	}
	return strings.Join(fields, ". ")
}

func strVal(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func intVal(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func floatVal(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func strPtr(s string) *string { return &s }

func orEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// wholeFloat renders a float as a digit string, rounding fractional
// values. A period inside a field would shift the delimited columns.
func wholeFloat(f float64) string {
	return fmt.Sprintf("%d", int64(math.Round(f)))
}
