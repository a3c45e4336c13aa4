package kernel

// Address is an origin or destination block of an order.
type Address struct {
	name     string
	line1    string
	town     string
	postcode Postcode
}

// NewAddress creates an address.
func NewAddress(name, line1, town string, postcode Postcode) Address {
	return Address{
		name:     name,
		line1:    line1,
		town:     town,
		postcode: postcode,
	}
}

// Name returns the site or company name.
func (a Address) Name() string {
	return a.name
}

// Line1 returns the first street line.
func (a Address) Line1() string {
	return a.line1
}

// Town returns the post town.
func (a Address) Town() string {
	return a.town
}

// Postcode returns the address postcode.
func (a Address) Postcode() Postcode {
	return a.postcode
}
