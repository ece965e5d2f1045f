package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as the unwrap targets for all error types in this package.
// Callers classify errors with errors.Is against these values.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrVersionIsInvalid   = errors.New("version is invalid")
	ErrDomainRuleViolated = errors.New("domain rule violated")
	ErrVersionConflict    = errors.New("version conflict")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrExternalEffect     = errors.New("external effect failed")
)

// sanitize removes line breaks from values interpolated into error messages
// so a single error always renders as a single log line.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value does not satisfy its validation rules.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value falls outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that a version value is malformed or unusable.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// Rule tags carried by DomainRuleError. Callers and the HTTP layer match on these
// rather than on message text.
const (
	RuleIllegalTransition       = "illegal_transition"
	RuleOvercollection          = "overcollection"
	RuleCancellationNotEligible = "cancellation_not_eligible"
	RuleNoPendingCancellation   = "no_pending_cancellation"
	RuleCashNotApplicable       = "cash_not_applicable"
	RuleCompletionUnpaid        = "completion_requires_payment"
	RuleLineItemsLocked         = "line_items_locked"
	RuleAddressLocked           = "address_locked"
	RuleInvoiceAlreadyAttached  = "invoice_already_attached"
	RuleRefundAlreadySettled    = "refund_already_settled"
)

// DomainRuleError indicates that a request violates a business invariant.
// It is never retried automatically; Rule names the specific invariant.
type DomainRuleError struct {
	Rule    string
	Message string
	Cause   error
}

// NewDomainRuleError creates a DomainRuleError for the named rule.
func NewDomainRuleError(rule, message string) *DomainRuleError {
	return &DomainRuleError{Rule: rule, Message: message}
}

// NewDomainRuleErrorWithCause creates a DomainRuleError wrapping an underlying cause.
func NewDomainRuleErrorWithCause(rule, message string, cause error) *DomainRuleError {
	return &DomainRuleError{Rule: rule, Message: message, Cause: cause}
}

func (e *DomainRuleError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s: %s (cause: %s)", ErrDomainRuleViolated, e.Rule, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrDomainRuleViolated, e.Rule, e.Message))
}

func (e *DomainRuleError) Unwrap() error {
	return ErrDomainRuleViolated
}

// VersionConflictError indicates that an optimistic-concurrency write lost the race:
// the stored version no longer matches the version the caller read. The caller
// should re-read and retry the whole operation.
type VersionConflictError struct {
	ID       any
	Expected int64
	Cause    error
}

// NewVersionConflictError creates a VersionConflictError for the given object and expected version.
func NewVersionConflictError(id any, expected int64) *VersionConflictError {
	return &VersionConflictError{ID: id, Expected: expected}
}

// NewVersionConflictErrorWithCause creates a VersionConflictError wrapping an underlying cause.
func NewVersionConflictErrorWithCause(id any, expected int64, cause error) *VersionConflictError {
	return &VersionConflictError{ID: id, Expected: expected, Cause: cause}
}

func (e *VersionConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s at version %d (cause: %s)", ErrVersionConflict, e.ID, e.Expected, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s at version %d", ErrVersionConflict, e.ID, e.Expected))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}

// PermissionDeniedError indicates that the acting role may not perform the requested operation.
type PermissionDeniedError struct {
	Operation string
	Role      string
	Cause     error
}

// NewPermissionDeniedError creates a PermissionDeniedError for the given operation and role.
func NewPermissionDeniedError(operation, role string) *PermissionDeniedError {
	return &PermissionDeniedError{Operation: operation, Role: role}
}

// NewPermissionDeniedErrorWithCause creates a PermissionDeniedError wrapping an underlying cause.
func NewPermissionDeniedErrorWithCause(operation, role string, cause error) *PermissionDeniedError {
	return &PermissionDeniedError{Operation: operation, Role: role, Cause: cause}
}

func (e *PermissionDeniedError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s is not allowed to %s (cause: %s)", ErrPermissionDenied, e.Role, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s is not allowed to %s", ErrPermissionDenied, e.Role, e.Operation))
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrPermissionDenied
}

// ExternalEffectError indicates that a post-commit collaborator call failed after the
// state mutation had already committed. It is a partial failure, not a rollback signal:
// the result of the operation stands and the effect is retried out of band.
type ExternalEffectError struct {
	Effect string
	Key    string
	Cause  error
}

// NewExternalEffectError creates an ExternalEffectError for the named effect and idempotency key.
func NewExternalEffectError(effect, key string, cause error) *ExternalEffectError {
	return &ExternalEffectError{Effect: effect, Key: key, Cause: cause}
}

func (e *ExternalEffectError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (key: %s) (cause: %s)", ErrExternalEffect, e.Effect, e.Key, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s (key: %s)", ErrExternalEffect, e.Effect, e.Key))
}

func (e *ExternalEffectError) Unwrap() error {
	return ErrExternalEffect
}
