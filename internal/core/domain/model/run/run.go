package run

import (
	"errors"
	"time"

	"runplanner/internal/core/domain/model/kernel"
	"runplanner/internal/pkg/errs"
)

var (
	ErrRunIsNotConstructed = errors.New("Run must be created via NewRun constructor")
	ErrDateIsRequired      = errs.NewValueIsRequiredError("date")
	ErrDriverIsRequired    = errs.NewValueIsRequiredError("driver")
	ErrVehicleIsRequired   = errs.NewValueIsRequiredError("vehicle")
)

// DateLayout is the calendar-date format used on the wire and in labels.
const DateLayout = "2006-01-02"

// Run is a scheduled movement referencing one driver, one vehicle and an
// optional trailer. Its capacity ceiling is derived from fleet data, never stored.
type Run struct {
	id        kernel.UUID
	date      time.Time
	runType   Type
	status    Status
	driverID  kernel.UUID
	vehicleID kernel.UUID
	trailerID *kernel.UUID
	deleted   bool

	isConstructed bool
}

// NewRun creates a Planned run.
func NewRun(
	id kernel.UUID,
	date time.Time,
	runType Type,
	driverID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
) (*Run, error) {
	return RestoreRun(id, date, runType, Planned, driverID, vehicleID, trailerID, false)
}

// RestoreRun rebuilds a run from storage.
func RestoreRun(
	id kernel.UUID,
	date time.Time,
	runType Type,
	status Status,
	driverID, vehicleID kernel.UUID,
	trailerID *kernel.UUID,
	deleted bool,
) (*Run, error) {
	r := &Run{
		runType:       runType,
		status:        status,
		deleted:       deleted,
		isConstructed: true,
	}

	var trailerErr error
	if trailerID != nil {
		trailerErr = trailerID.Validate()
		tid := *trailerID
		r.trailerID = &tid
	}

	if err := errors.Join(
		id.Validate(),
		r.setDate(date),
		runType.Validate(),
		status.Validate(),
		r.setDriver(driverID),
		r.setVehicle(vehicleID),
		trailerErr,
	); err != nil {
		return nil, err
	}

	r.id = id
	return r, nil
}

// Validate returns ErrRunIsNotConstructed for a nil or zero-value run.
func (r *Run) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRunIsNotConstructed
	}
	return nil
}

// ID returns the run's unique identifier.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// Date is the calendar day of the run at midnight UTC.
func (r *Run) Date() time.Time {
	return r.date
}

// Type returns the run type.
func (r *Run) Type() Type {
	return r.runType
}

// Status returns the current status of the run.
func (r *Run) Status() Status {
	return r.status
}

// DriverID returns the driver allocated to the run.
func (r *Run) DriverID() kernel.UUID {
	return r.driverID
}

// VehicleID returns the vehicle allocated to the run.
func (r *Run) VehicleID() kernel.UUID {
	return r.vehicleID
}

// TrailerID returns nil when no trailer is attached.
func (r *Run) TrailerID() *kernel.UUID {
	if r.trailerID == nil {
		return nil
	}
	tid := *r.trailerID
	return &tid
}

// IsDeleted reports whether the run has been soft-deleted.
func (r *Run) IsDeleted() bool {
	return r.deleted
}

// Start moves the run out on the road.
func (r *Run) Start() error {
	next, err := r.status.Start()
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

// Complete closes the run.
func (r *Run) Complete() error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

// ValidateAssignable checks that orders may be added to or removed from the run.
func (r *Run) ValidateAssignable(operation string) error {
	if r.status != Planned {
		return errs.NewInvalidStateError("run", r.status.String(), operation)
	}
	return nil
}

// ValidateDelete checks that the run may be deleted.
func (r *Run) ValidateDelete() error {
	if r.status != Planned {
		return errs.NewInvalidStateError("run", r.status.String(), "delete")
	}
	return nil
}

// MarkDeleted soft-deletes the run.
func (r *Run) MarkDeleted() error {
	if err := r.ValidateDelete(); err != nil {
		return err
	}
	r.deleted = true
	return nil
}

func (r *Run) setDate(date time.Time) error {
	if date.IsZero() {
		return ErrDateIsRequired
	}
	y, m, d := date.Date()
	r.date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

func (r *Run) setDriver(id kernel.UUID) error {
	if id.Validate() != nil {
		return ErrDriverIsRequired
	}
	r.driverID = id
	return nil
}

func (r *Run) setVehicle(id kernel.UUID) error {
	if id.Validate() != nil {
		return ErrVehicleIsRequired
	}
	r.vehicleID = id
	return nil
}
