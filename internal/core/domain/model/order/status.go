package order

import (
	"fmt"

	"runplanner/internal/pkg/errs"
)

// Status is the lifecycle state of an order. Values are persisted as integers.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	New
	Planned
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		New:        "new",
		Planned:    "planned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// ParseStatus maps the wire representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsHistorical reports statuses the planning core must not mutate.
func (s Status) IsHistorical() bool {
	return s == InProgress || s == Completed || s == Cancelled
}

// Plan transitions New -> Planned.
func (s Status) Plan() (Status, error) {
	if s != New {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "assign")
	}
	return Planned, nil
}

// Release transitions Planned -> New.
func (s Status) Release() (Status, error) {
	if s != Planned {
		return Unknown, errs.NewInvalidStateError("order", s.String(), "unassign")
	}
	return New, nil
}
