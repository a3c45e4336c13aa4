package kernel

import "strings"

// Postcode is a postal code as entered on an order. An empty postcode is
// allowed: zone classification treats it as "no match".
type Postcode struct {
	raw string
}

// NewPostcode trims surrounding whitespace; nothing else is rewritten so the
// value round-trips to storage unchanged.
func NewPostcode(raw string) Postcode {
	return Postcode{raw: strings.TrimSpace(raw)}
}

func (p Postcode) String() string {
	return p.raw
}

// IsEmpty reports whether the postcode is blank.
func (p Postcode) IsEmpty() bool {
	return p.raw == ""
}

// Outward returns the upper-cased segment before the first internal whitespace,
// e.g. "SW1A" for "sw1a 1aa".
func (p Postcode) Outward() string {
	fields := strings.Fields(p.raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
