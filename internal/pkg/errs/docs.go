// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - DomainRuleError: For when a request violates a named business invariant
//   - VersionConflictError: For when an optimistic-concurrency write loses the race
//   - PermissionDeniedError: For when the acting role may not perform an operation
//   - ExternalEffectError: For when a post-commit collaborator call fails
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The four "hard" kinds (domain rule, version conflict, not found, permission)
// abort an operation before any write. ExternalEffectError is different: it is
// reported after a successful write, so callers treat it as a partial failure
// rather than a rollback signal.
package errs
