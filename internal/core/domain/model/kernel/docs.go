// Package kernel provides core domain primitives for the dispatch system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - Cell: A value object for a storage-cell label drawn from a closed set
//   - CellSet: The configurable closed set of valid storage-cell labels
//   - ConstructorGuard: A defensive programming pattern to ensure proper object construction
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
