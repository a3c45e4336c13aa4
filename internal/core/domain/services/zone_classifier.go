package services

import (
	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/core/domain/model/order"
	"runplanner/internal/core/domain/model/zone"
)

// Side tells on which leg of the network an order sits relative to the home zone.
type Side string

const (
	// SideDelivery marks orders whose destination lies in the home zone.
	SideDelivery Side = "delivery"
	// SideCollection marks orders picked up inside the home zone for elsewhere.
	SideCollection Side = "collection"
	// SideNone marks orders that touch the home zone at neither end.
	SideNone Side = ""
)

// ZoneClassifier maps postcodes to named zones.
//
// Matching rules:
//   - only the outward code (text before the first space) is compared, upper-cased
//   - zones are tried in configuration order and the first match wins
//   - an empty postcode, or an empty zone list, yields no match
//
// Example usage:
//
//	classifier := NewZoneClassifier(set)
//	name, ok := classifier.Classify(kernel.NewPostcode("SW1A 1AA"))
//	if !ok {
//	    // postcode is outside every configured zone
//	}
type ZoneClassifier struct {
	zones []zone.Zone
}

// NewZoneClassifier creates a classifier over an ordered zone set.
func NewZoneClassifier(set zone.Set) ZoneClassifier {
	return ZoneClassifier{zones: set.Zones()}
}

// Classify returns the name of the first zone matching the postcode.
func (c ZoneClassifier) Classify(postcode kernel.Postcode) (string, bool) {
	return Classify(postcode, c.zones)
}

// IsInHomeZone reports whether the postcode matches the home zone.
func (c ZoneClassifier) IsInHomeZone(postcode kernel.Postcode) bool {
	return IsInHomeZone(postcode, c.zones)
}

// Side classifies an order. Destination is checked first, so an order moving
// inside the home zone counts as delivery-side.
func (c ZoneClassifier) Side(o *order.Order) Side {
	return c.SideOf(o.Origin().Postcode(), o.Destination().Postcode())
}

// SideOf is Side for callers holding only the two postcodes.
func (c ZoneClassifier) SideOf(origin, destination kernel.Postcode) Side {
	if c.IsInHomeZone(destination) {
		return SideDelivery
	}
	if c.IsInHomeZone(origin) {
		return SideCollection
	}
	return SideNone
}

// Classify is the stateless form of ZoneClassifier.Classify.
func Classify(postcode kernel.Postcode, zones []zone.Zone) (string, bool) {
	outward := postcode.Outward()
	if outward == "" {
		return "", false
	}
	for _, z := range zones {
		if z.Matches(outward) {
			return z.Name(), true
		}
	}
	return "", false
}

// IsInHomeZone looks only at the home zone's patterns, so a postcode first
// claimed by an earlier non-home zone still counts as home.
func IsInHomeZone(postcode kernel.Postcode, zones []zone.Zone) bool {
	outward := postcode.Outward()
	if outward == "" {
		return false
	}
	for _, z := range zones {
		if z.IsHome() {
			return z.Matches(outward)
		}
	}
	return false
}
