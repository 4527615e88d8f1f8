package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request")
	ErrValidation     = errors.New("validation failed")

	ErrRoleMismatch      = errors.New("actor lacks the role required for this operation")
	ErrInvalidTransition = errors.New("invalid bug report status transition")
	ErrUnauthenticated   = errors.New("missing or invalid credentials")
)

// NotFoundError names the kind and id of the missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type AlreadyExistsError struct {
	Kind string
	ID   string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s '%s' already exists", e.Kind, e.ID)
}
func (e *AlreadyExistsError) Is(target error) bool { return target == ErrAlreadyExists }

// RoleMismatchError reports an actor whose role does not permit the operation.
type RoleMismatchError struct {
	UserID   string
	Role     string
	Required string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("user '%s' with role '%s' cannot perform this operation (requires %s)", e.UserID, e.Role, e.Required)
}
func (e *RoleMismatchError) Is(target error) bool { return target == ErrRoleMismatch }

// InvalidTransitionError identifies the requested operation and the state it was attempted from.
type InvalidTransitionError struct {
	Op   string
	From string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a bug report in status '%s'", e.Op, e.From)
}
func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// FieldError is a domain-level validation failure on a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field '%s' %s", e.Field, e.Message)
}
func (e *FieldError) Is(target error) bool { return target == ErrValidation }
