package run

import (
	"fmt"

	"runplanner/internal/pkg/errs"
)

// Status is the lifecycle state of a run. Values are persisted as integers.
type Status int

const (
	Unknown Status = iota
	Planned
	InProgress
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Planned:    "planned",
		InProgress: "in_progress",
		Completed:  "completed",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate returns an error for an unknown status.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("run status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// Start transitions Planned -> InProgress.
func (s Status) Start() (Status, error) {
	if s != Planned {
		return Unknown, errs.NewInvalidStateError("run", s.String(), "start")
	}
	return InProgress, nil
}

// Complete transitions InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewInvalidStateError("run", s.String(), "complete")
	}
	return Completed, nil
}

// AllowsManifest reports whether a manifest document makes sense for the run.
func (s Status) AllowsManifest() bool {
	return s == InProgress || s == Completed
}
