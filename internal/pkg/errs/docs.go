// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one type per failure kind the core can surface:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed input (validation)
//   - ObjectNotFoundError: an order id or number that does not exist
//   - ConflictError: a uniqueness or state invariant would be violated
//   - StorageError: the backing store is unreachable or a transaction failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers classify failures
//     with errors.Is rather than string matching
package errs
