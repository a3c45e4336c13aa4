// Package errs provides standardized error types for the run planner.
// Every type follows the same pattern so callers can branch on the error kind
// with errors.Is against a sentinel, or errors.As to read the details:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type carrying the parameters of the failure
//   - Constructor functions with and without cause
//   - Error() for the message and Unwrap() returning the sentinel
//
// The planning core surfaces four error kinds to its callers:
//   - NotFound: ObjectNotFoundError
//   - AlreadyAssigned: AlreadyAssignedError
//   - InvalidState: InvalidStateError
//   - ValidationError: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
package errs
