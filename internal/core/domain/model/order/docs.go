// Package order provides the Order aggregate: a shipment request with origin and
// destination addresses, a cargo manifest and a lifecycle status.
//
// The planning core only ever moves an order between New and Planned:
//
//	New --Plan--> Planned --Release--> New
//
// InProgress, Completed and Cancelled are reached through external order
// lifecycle events; once there, the order's assignment is historical and the
// planning core refuses to touch it.
package order
