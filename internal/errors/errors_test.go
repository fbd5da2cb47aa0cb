package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Is(t *testing.T) {
	assert.ErrorIs(t, NewNotFoundError("contact"), ErrContactNotFound)
	assert.NotErrorIs(t, NewNotFoundError("organization"), ErrContactNotFound)
	assert.True(t, IsNotFound(ErrOrganizationNotFound))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestNotFoundError_WrappedIs(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", ErrContactNotFound)
	assert.ErrorIs(t, wrapped, ErrContactNotFound)
	assert.True(t, IsNotFound(wrapped))
}

func TestDuplicateEmailError_MatchesAnyInstance(t *testing.T) {
	a := NewDuplicateEmailError(uuid.New())
	b := NewDuplicateEmailError(uuid.New())

	// Any two DuplicateEmailErrors compare equal under errors.Is regardless
	// of which contact they point at
	assert.ErrorIs(t, a, b)
	assert.True(t, IsDuplicateEmail(a))
}

func TestDuplicateEmailError_CarriesExistingID(t *testing.T) {
	existingID := uuid.New()
	err := fmt.Errorf("create contact: %w", NewDuplicateEmailError(existingID))

	var dupErr *DuplicateEmailError
	assert.True(t, errors.As(err, &dupErr))
	assert.Equal(t, existingID, dupErr.ExistingContactID)
	assert.Contains(t, dupErr.Error(), existingID.String())
}

func TestAlreadyExistsError(t *testing.T) {
	assert.True(t, IsAlreadyExists(ErrUserExists))
	assert.Contains(t, ErrUserExists.Error(), "with this email")
	assert.Contains(t, NewAlreadyExistsError("tag", "").Error(), "tag already exists")
}

func TestValidationError(t *testing.T) {
	withField := NewValidationError("email", "must be valid")
	assert.True(t, IsValidation(withField))
	assert.Contains(t, withField.Error(), "email")

	withoutField := NewValidationError("", "bad payload")
	assert.Contains(t, withoutField.Error(), "bad payload")
}

func TestAuthorizationErrors(t *testing.T) {
	assert.True(t, IsAuthorization(ErrPermissionDenied))
	assert.True(t, IsAuthorization(ErrNotNoteAuthor))
	assert.True(t, IsAuthorization(ErrNoCurrentOrganization))
	assert.True(t, IsAuthorization(ErrNotOrganizationMember))
	assert.False(t, IsAuthorization(ErrContactNotFound))
}

func TestAuthenticationError(t *testing.T) {
	err := NewAuthenticationError("bad token")
	assert.True(t, IsAuthentication(err))
	assert.False(t, IsAuthorization(err))
	assert.Equal(t, "bad token", err.Error())
}

func TestDuplicateEmailIsNotValidation(t *testing.T) {
	// The conflict is a distinct condition, not a payload problem
	err := NewDuplicateEmailError(uuid.New())
	assert.False(t, IsValidation(err))
	assert.False(t, IsAlreadyExists(err))
}
