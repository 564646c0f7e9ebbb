package services

import "errors"

// FailureKind identifies one of the expected business outcomes. Anything a
// service returns that is not a *Failure is treated as a defect by the
// handler layer, never as one of these.
type FailureKind string

const (
	FailureValidation         FailureKind = "VALIDATION_FAILED"
	FailureNotFound           FailureKind = "NOT_FOUND"
	FailureNameConflict       FailureKind = "NAME_CONFLICT"
	FailureForeignKeyConflict FailureKind = "FOREIGN_KEY_CONFLICT"
)

// Failure is a routed business failure: what went wrong plus where to send
// the user to recover. Route is an opaque page token for the presentation
// layer, e.g. "/category-page".
type Failure struct {
	Kind    FailureKind
	Message string
	Route   string
}

func (f *Failure) Error() string {
	return f.Message
}

// NewValidationFailure reports a field-level constraint violation.
func NewValidationFailure(message, route string) *Failure {
	return &Failure{Kind: FailureValidation, Message: message, Route: route}
}

// NewNotFoundFailure reports an operation addressing an entity that does not exist.
func NewNotFoundFailure(message, route string) *Failure {
	return &Failure{Kind: FailureNotFound, Message: message, Route: route}
}

// NewNameConflictFailure reports a name-uniqueness violation on create or rename.
func NewNameConflictFailure(message, route string) *Failure {
	return &Failure{Kind: FailureNameConflict, Message: message, Route: route}
}

// NewForeignKeyConflictFailure reports a delete blocked by dependent entities.
func NewForeignKeyConflictFailure(message, route string) *Failure {
	return &Failure{Kind: FailureForeignKeyConflict, Message: message, Route: route}
}

// AsFailure unwraps err into a *Failure if it is one.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
