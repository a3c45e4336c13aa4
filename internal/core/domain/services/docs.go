// Package services provides stateless domain services of the run planner that
// don't belong to a single aggregate.
//
// The package includes:
//   - ZoneClassifier: maps postcodes to configured zones and orders to a side
//   - CapacityAggregator: sums a run's manifest and flags overloads
//
// Both are pure: they take domain values and never touch storage.
package services
