// Package run provides the Run aggregate: a scheduled vehicle movement on one
// calendar date, carrying zero or more orders.
//
// Lifecycle is forward-only:
//
//	Planned --Start--> InProgress --Complete--> Completed
//
// Orders may be assigned, unassigned or moved only while the run is Planned,
// and a run may only be deleted while it is Planned.
package run
