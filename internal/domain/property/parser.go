package property

import (
	"regexp"
	"strconv"
	"strings"
)

// Tagged key-path patterns produced by the CSV-dump ingestion pipeline,
// e.g. "property.price.value: 450000, property.bedrooms: 3".
var (
	rePrice   = regexp.MustCompile(`property\.price\.value[,:]?\s*(\d+\.?\d*)`)
	reBeds    = regexp.MustCompile(`property\.bedrooms[,:]?\s*(\d+\.?\d*)`)
	reBaths   = regexp.MustCompile(`property\.bathrooms[,:]?\s*(\d+\.?\d*)`)
	reSqft    = regexp.MustCompile(`property\.livingArea[,:]?\s*(\d+\.?\d*)`)
	reAddress = regexp.MustCompile(`property\.address\.streetAddress[,:]?\s*([^,\n]+)`)
	reCity    = regexp.MustCompile(`property\.address\.city[,:]?\s*([^,\n]+)`)
)

// Parse extracts a structured record from a raw document. It is total:
// any input yields a record, possibly empty. Strategies are tried in
// fixed priority order, accepting the first that produces at least one
// field: tagged key paths, then the pipe-delimited 3-field fallback,
// then the period-delimited assessor format.
func Parse(raw string) Record {
	if rec := parseTagged(raw); !rec.IsEmpty() {
		return rec
	}
	if rec := parsePiped(raw); !rec.IsEmpty() {
		return rec
	}
	return parseAssessor(raw)
}

// parseTagged scans for dotted key paths. Missing keys stay unset.
func parseTagged(raw string) Record {
	var rec Record

	if m := rePrice.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec.price = &v
		}
	}
	if m := reBeds.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			n := int(v)
			rec.beds = &n
		}
	}
	if m := reBaths.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			rec.baths = &v
		}
	}
	if m := reSqft.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			n := int(v)
			rec.sqft = &n
		}
	}

	street := cleanFragment(firstGroup(reAddress, raw))
	city := cleanFragment(firstGroup(reCity, raw))
	switch {
	case street != "" && city != "":
		addr := street + ", " + city
		rec.address = &addr
	case street != "":
		rec.address = &street
	}

	return rec
}

// parsePiped handles the "label | address | city | ..." dump format.
func parsePiped(raw string) Record {
	parts := strings.Split(raw, "|")
	if len(parts) < 3 {
		return Record{}
	}
	street := strings.TrimSpace(parts[1])
	city := strings.TrimSpace(parts[2])
	if street == "" {
		return Record{}
	}

	var rec Record
	addr := street
	if city != "" {
		addr += ", " + city
	}
	rec.address = &addr
	return rec
}

// parseAssessor handles period-delimited assessor rows:
// "104 Putnam St, Boston, MA 02128. THREE-FAM DWELLING. 6. 3. 719,400".
// Numeric fields must be digit strings; anything else stays unset.
func parseAssessor(raw string) Record {
	parts := strings.Split(raw, ".")
	if len(parts) < 5 {
		return Record{}
	}

	var rec Record
	if addr := strings.TrimSpace(parts[0]); addr != "" {
		rec.address = &addr
	}
	if typ := strings.TrimSpace(parts[1]); typ != "" {
		rec.propertyType = &typ
	}
	if n, ok := parseDigits(parts[2]); ok {
		beds := int(n)
		rec.beds = &beds
	}
	if n, ok := parseDigits(parts[3]); ok {
		rec.baths = &n
	}
	if n, ok := parseDigits(strings.ReplaceAll(parts[4], ",", "")); ok {
		rec.price = &n
	}
	return rec
}

// parseDigits converts a digit-only string to a number.
func parseDigits(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// cleanFragment strips quotes and surrounding whitespace from an
// extracted value; fragments shorter than 3 characters are noise.
func cleanFragment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return ""
	}
	return s
}
