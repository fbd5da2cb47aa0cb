package errors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError represents an error when an entity is not found. Cross-tenant
// lookups surface as NotFoundError too, so callers cannot distinguish another
// organization's record from a nonexistent one.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in organization"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// DuplicateEmailError is the conflict result of the duplicate-email guard.
// It carries the existing contact's id so the caller can offer a view/merge
// action instead of creating a second row. Deliberately not a ValidationError.
type DuplicateEmailError struct {
	ExistingContactID uuid.UUID
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("contact with this email already exists in the organization (existing contact %s)", e.ExistingContactID)
}

// Is enables errors.Is() comparison for DuplicateEmailError regardless of id
func (e *DuplicateEmailError) Is(target error) bool {
	_, ok := target.(*DuplicateEmailError)
	return ok
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrContactNotFound      = &NotFoundError{Entity: "contact"}
	ErrContactNoteNotFound  = &NotFoundError{Entity: "contact note"}
	ErrContactMetaNotFound  = &NotFoundError{Entity: "custom field"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrMembershipNotFound   = &NotFoundError{Entity: "membership"}
)

// Already Exists Errors
var (
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this slug"}
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrMembershipExists   = &AlreadyExistsError{Entity: "membership", Context: "for this user in the organization"}
)

// Business Logic Errors
var (
	ErrMetaLimitReached        = errors.New("maximum 5 custom fields allowed per contact")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrNoCurrentOrganization   = &AuthorizationError{Message: "no current organization for this session"}
	ErrNotNoteAuthor           = &AuthorizationError{Message: "only the note author may modify it"}
	ErrNotOrganizationMember   = &AuthorizationError{Message: "user is not a member of this organization"}
	ErrPermissionDenied        = &AuthorizationError{Message: "permission denied"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsDuplicateEmail checks if an error is a DuplicateEmailError
func IsDuplicateEmail(err error) bool {
	var dupErr *DuplicateEmailError
	return errors.As(err, &dupErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewDuplicateEmailError creates a conflict error carrying the existing contact id
func NewDuplicateEmailError(existingContactID uuid.UUID) error {
	return &DuplicateEmailError{ExistingContactID: existingContactID}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
