// Package kernel contains shared value objects used across the warehouse
// planning domain: strongly typed identifiers and floor coordinates.
//
// Both UUID and Location are immutable value objects whose zero values are
// invalid; they must be created through their constructors, which enforce the
// domain invariants (valid identifier bytes, non-negative coordinates).
package kernel
