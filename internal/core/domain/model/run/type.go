package run

import (
	"fmt"
	"strings"

	"runplanner/internal/pkg/errs"
)

// Type classifies what a run does.
type Type string

const (
	Collection Type = "collection"
	Delivery   Type = "delivery"
	Trunking   Type = "trunking"
)

// ParseType parses a run type case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate returns an error for an unknown run type.
func (t Type) Validate() error {
	switch t {
	case Collection, Delivery, Trunking:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("run type", fmt.Errorf("%q is not a run type", string(t)))
	}
}

// Title is the capitalised form used in run labels.
func (t Type) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}
