// Package zone provides named postcode-pattern groups used to classify orders
// as collection-side or delivery-side relative to the home zone.
package zone

import (
	"fmt"
	"strings"

	"runplanner/internal/pkg/errs"
)

// Wildcard markers accepted at the end of a pattern. "%" is the stored form;
// "*" is accepted as an alias.
const (
	Wildcard      = "%"
	WildcardAlias = "*"
)

// Pattern is one postcode pattern. A trailing wildcard makes it a prefix match
// against the outward code; without one it must equal the outward code.
type Pattern struct {
	literal string
	prefix  bool
}

// ParsePattern normalizes raw to upper case and strips trailing wildcards,
// marking the pattern as a prefix match when any were present.
func ParsePattern(raw string) Pattern {
	p := strings.ToUpper(strings.TrimSpace(raw))
	prefix := false
	for strings.HasSuffix(p, Wildcard) || strings.HasSuffix(p, WildcardAlias) {
		p = p[:len(p)-1]
		prefix = true
	}
	return Pattern{literal: strings.TrimSpace(p), prefix: prefix}
}

// Matches tests a normalized outward code. An empty literal never matches, so a
// bare "%" is not a catch-all.
func (p Pattern) Matches(outward string) bool {
	if p.literal == "" || outward == "" {
		return false
	}
	if p.prefix {
		return strings.HasPrefix(outward, p.literal)
	}
	return outward == p.literal
}

func (p Pattern) String() string {
	if p.prefix {
		return p.literal + Wildcard
	}
	return p.literal
}

// Zone is a named classification region.
type Zone struct {
	name     string
	patterns []Pattern
	isHome   bool
}

// NewZone creates a zone from raw patterns. Blank patterns are skipped.
// Returns an error if name is blank.
func NewZone(name string, patterns []string, isHome bool) (Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone name")
	}
	parsed := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		parsed = append(parsed, ParsePattern(raw))
	}
	return Zone{name: name, patterns: parsed, isHome: isHome}, nil
}

// Name returns the zone's display name.
func (z Zone) Name() string {
	return z.name
}

// IsHome reports whether this is the home zone.
func (z Zone) IsHome() bool {
	return z.isHome
}

// Patterns returns a copy of the zone's parsed patterns.
func (z Zone) Patterns() []Pattern {
	out := make([]Pattern, len(z.patterns))
	copy(out, z.patterns)
	return out
}

// Matches tests an already-normalized outward code against every pattern.
func (z Zone) Matches(outward string) bool {
	for _, p := range z.patterns {
		if p.Matches(outward) {
			return true
		}
	}
	return false
}

// Set is an ordered zone configuration with at most one home zone.
// Overlapping patterns across zones are accepted; order decides.
type Set struct {
	zones []Zone
}

// NewSet creates an ordered zone set. Returns an error if more than one zone
// is marked as home.
func NewSet(zones []Zone) (Set, error) {
	homes := make([]string, 0, 1)
	for _, z := range zones {
		if z.isHome {
			homes = append(homes, z.name)
		}
	}
	if len(homes) > 1 {
		return Set{}, errs.NewValueIsInvalidErrorWithCause(
			"zones",
			fmt.Errorf("only one home zone allowed, got %s", strings.Join(homes, ", ")),
		)
	}
	out := make([]Zone, len(zones))
	copy(out, zones)
	return Set{zones: out}, nil
}

// Zones returns a copy of the zones in configuration order.
func (s Set) Zones() []Zone {
	out := make([]Zone, len(s.zones))
	copy(out, s.zones)
	return out
}

// Home returns the home zone, if one is configured.
func (s Set) Home() (Zone, bool) {
	for _, z := range s.zones {
		if z.isHome {
			return z, true
		}
	}
	return Zone{}, false
}
