package property

import (
	"strings"
	"testing"
)

func TestParse_Assessor(t *testing.T) {
	rec := Parse("104 Putnam St, Boston, MA 02128. THREE-FAM DWELLING. 6. 3. 719,400")

	if addr, ok := rec.Address(); !ok || addr != "104 Putnam St, Boston, MA 02128" {
		t.Errorf("Address() = %q, %v", addr, ok)
	}
	if typ, ok := rec.PropertyType(); !ok || typ != "THREE-FAM DWELLING" {
		t.Errorf("PropertyType() = %q, %v", typ, ok)
	}
	if beds, ok := rec.Beds(); !ok || beds != 6 {
		t.Errorf("Beds() = %d, %v", beds, ok)
	}
	if baths, ok := rec.Baths(); !ok || baths != 3 {
		t.Errorf("Baths() = %f, %v", baths, ok)
	}
	if price, ok := rec.Price(); !ok || price != 719400 {
		t.Errorf("Price() = %f, %v", price, ok)
	}
}

func TestParse_AssessorTooFewFields(t *testing.T) {
	rec := Parse("not. well. formed")
	if !rec.IsEmpty() {
		t.Errorf("expected empty record, got %+v", rec)
	}

	// Display defaults apply only at presentation time.
	disp := rec.WithDisplayDefaults()
	if addr, _ := disp.Address(); addr != DefaultAddress {
		t.Errorf("display address = %q", addr)
	}
	if typ, _ := disp.PropertyType(); typ != DefaultType {
		t.Errorf("display type = %q", typ)
	}
	if beds, _ := disp.Beds(); beds != DefaultBeds {
		t.Errorf("display beds = %d", beds)
	}
	if baths, _ := disp.Baths(); baths != DefaultBaths {
		t.Errorf("display baths = %f", baths)
	}
	if price, _ := disp.Price(); price != DefaultPrice {
		t.Errorf("display price = %f", price)
	}
}

func TestParse_AssessorNonNumericFieldsStayUnset(t *testing.T) {
	rec := Parse("12 Main St. CONDO. six. n/a. unknown")
	if _, ok := rec.Beds(); ok {
		t.Error("beds should be unset for non-digit input")
	}
	if _, ok := rec.Baths(); ok {
		t.Error("baths should be unset for non-digit input")
	}
	if _, ok := rec.Price(); ok {
		t.Error("price should be unset for non-digit input")
	}
	if addr, ok := rec.Address(); !ok || addr != "12 Main St" {
		t.Errorf("Address() = %q, %v", addr, ok)
	}
}

func TestParse_Tagged(t *testing.T) {
	raw := `property.price.value: 875000, property.bedrooms: 3, ` +
		`property.bathrooms: 2.5, property.livingArea: 1450, ` +
		`property.address.streetAddress: "45 Beacon St", property.address.city: Boston`
	rec := Parse(raw)

	if price, ok := rec.Price(); !ok || price != 875000 {
		t.Errorf("Price() = %f, %v", price, ok)
	}
	if beds, ok := rec.Beds(); !ok || beds != 3 {
		t.Errorf("Beds() = %d, %v", beds, ok)
	}
	if baths, ok := rec.Baths(); !ok || baths != 2.5 {
		t.Errorf("Baths() = %f, %v", baths, ok)
	}
	if sqft, ok := rec.Sqft(); !ok || sqft != 1450 {
		t.Errorf("Sqft() = %d, %v", sqft, ok)
	}
	if addr, ok := rec.Address(); !ok || addr != "45 Beacon St, Boston" {
		t.Errorf("Address() = %q, %v", addr, ok)
	}
	if _, ok := rec.PropertyType(); ok {
		t.Error("tagged strategy never yields a property type")
	}
}

func TestParse_TaggedMissingKeysStayUnset(t *testing.T) {
	rec := Parse("property.bedrooms: 2, other fields absent")
	if beds, ok := rec.Beds(); !ok || beds != 2 {
		t.Errorf("Beds() = %d, %v", beds, ok)
	}
	if _, ok := rec.Price(); ok {
		t.Error("price should be unset")
	}
	if _, ok := rec.Address(); ok {
		t.Error("address should be unset")
	}
}

func TestParse_PipedFallback(t *testing.T) {
	rec := Parse("listing | 77 Salem St | Boston | MA")
	if addr, ok := rec.Address(); !ok || addr != "77 Salem St, Boston" {
		t.Errorf("Address() = %q, %v", addr, ok)
	}
}

func TestParse_TaggedTakesPriorityOverAssessor(t *testing.T) {
	// Tagged text contains periods, so the assessor split would produce
	// garbage fields if tried first.
	rec := Parse("property.price.value: 500000. extra. filler. text. here")
	if price, ok := rec.Price(); !ok || price != 500000 {
		t.Errorf("Price() = %f, %v", price, ok)
	}
	if addr, ok := rec.Address(); ok {
		t.Errorf("unexpected address %q from assessor fallthrough", addr)
	}
}

func TestParse_TotalOnGarbage(t *testing.T) {
	inputs := []string{"", "   ", "|||", ".....", "no structure at all", "\n\n\t"}
	for _, in := range inputs {
		rec := Parse(in)
		if !rec.IsEmpty() && !rec.HasIdentity() {
			// Parse must terminate and return a record either way; this
			// just exercises the inputs.
			continue
		}
	}
}

func TestRecord_AssessorRoundTrip(t *testing.T) {
	src := Parse("104 Putnam St, Boston, MA 02128. THREE-FAM DWELLING. 6. 3. 719400")
	back := Parse(src.Assessor())

	if a1, _ := src.Address(); true {
		if a2, ok := back.Address(); !ok || a1 != a2 {
			t.Errorf("address round trip: %q vs %q", a1, a2)
		}
	}
	if t1, _ := src.PropertyType(); true {
		if t2, ok := back.PropertyType(); !ok || t1 != t2 {
			t.Errorf("type round trip: %q vs %q", t1, t2)
		}
	}
	b1, _ := src.Beds()
	if b2, ok := back.Beds(); !ok || b1 != b2 {
		t.Errorf("beds round trip: %d vs %d", b1, b2)
	}
	ba1, _ := src.Baths()
	if ba2, ok := back.Baths(); !ok || ba1 != ba2 {
		t.Errorf("baths round trip: %f vs %f", ba1, ba2)
	}
	p1, _ := src.Price()
	if p2, ok := back.Price(); !ok || p1 != p2 {
		t.Errorf("price round trip: %f vs %f", p1, p2)
	}
}

func TestRecord_AssessorRoundTripPartial(t *testing.T) {
	src := Parse("9 Elm St. CONDO. 2. one. n/a")
	back := Parse(src.Assessor())

	if _, ok := back.Baths(); ok {
		t.Error("unset baths must stay unset after round trip")
	}
	if _, ok := back.Price(); ok {
		t.Error("unset price must stay unset after round trip")
	}
	if beds, ok := back.Beds(); !ok || beds != 2 {
		t.Errorf("beds round trip = %d, %v", beds, ok)
	}
}

func TestRecord_AssessorRoundsFractionalBaths(t *testing.T) {
	src := Parse("property.address.streetAddress: 45 Beacon St, property.bedrooms: 3, property.bathrooms: 2.5, property.price.value: 719400")

	out := src.Assessor()
	if strings.Count(out, ".") != 4 {
		t.Fatalf("fractional field leaked a delimiter into %q", out)
	}

	back := Parse(out)
	if ba, ok := back.Baths(); !ok || ba != 3 {
		t.Errorf("baths after round trip = %v, %v, want rounded 3", ba, ok)
	}
	if p, ok := back.Price(); !ok || p != 719400 {
		t.Errorf("price after round trip = %v, %v", p, ok)
	}
}
