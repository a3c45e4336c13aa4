// Package kernel provides the shared value objects of the planning domain:
// identifiers, postcodes and addresses. They are immutable and safe for
// concurrent use.
package kernel
