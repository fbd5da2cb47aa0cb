package service

import (
	"errors"
	"fmt"

	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactNoteService handles business logic for contact notes. Any member of
// the organization may read and add notes; editing and deleting a note is
// restricted to its author.
type ContactNoteService struct {
	repo      repository.ContactNoteRepositoryInterface
	contacts  repository.ContactRepositoryInterface
	gate      *auth.Gate
	validator *validator.Validate
}

// Ensure ContactNoteService implements ContactNoteServiceInterface
var _ ContactNoteServiceInterface = (*ContactNoteService)(nil)

// NewContactNoteService creates a new contact note service
func NewContactNoteService(
	repo repository.ContactNoteRepositoryInterface,
	contacts repository.ContactRepositoryInterface,
	gate *auth.Gate,
	validator *validator.Validate,
) *ContactNoteService {
	return &ContactNoteService{
		repo:      repo,
		contacts:  contacts,
		gate:      gate,
		validator: validator,
	}
}

// ContactNoteRequest represents the request to create or update a note
type ContactNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

// ContactNoteResponse represents a note in API responses
type ContactNoteResponse struct {
	ID         uuid.UUID `json:"id"`
	ContactID  uuid.UUID `json:"contact_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

// List retrieves the contact's notes, newest first
func (s *ContactNoteService) List(orgID, userID, contactID uuid.UUID) ([]ContactNoteResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	notes, err := s.repo.ListByContact(contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	responses := make([]ContactNoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = toNoteResponse(&note)
	}
	return responses, nil
}

// Create adds a note to the contact, authored by the acting user
func (s *ContactNoteService) Create(orgID, userID, contactID uuid.UUID, req *ContactNoteRequest) (*ContactNoteResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("body", err.Error())
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	note := &models.ContactNote{
		ContactID: contactID,
		UserID:    userID,
		Body:      req.Body,
	}
	if err := s.repo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

// Update edits a note's body. Only the author may edit.
func (s *ContactNoteService) Update(orgID, userID, contactID, noteID uuid.UUID, req *ContactNoteRequest) (*ContactNoteResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("body", err.Error())
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	note, err := s.repo.GetByID(contactID, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note.UserID != userID {
		return nil, apperrors.ErrNotNoteAuthor
	}

	note.Body = req.Body
	if err := s.repo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	resp := toNoteResponse(note)
	return &resp, nil
}

// Delete removes a note. Only the author may delete.
func (s *ContactNoteService) Delete(orgID, userID, contactID, noteID uuid.UUID) error {
	if err := s.requireAction(orgID, userID, auth.ActionView); err != nil {
		return err
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return err
	}

	note, err := s.repo.GetByID(contactID, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNoteNotFound
		}
		return fmt.Errorf("failed to get note: %w", err)
	}
	if note.UserID != userID {
		return apperrors.ErrNotNoteAuthor
	}

	if err := s.repo.Delete(contactID, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (s *ContactNoteService) requireAction(orgID, userID uuid.UUID, action auth.Action) error {
	allowed, err := s.gate.Can(orgID, userID, action)
	if err != nil {
		return fmt.Errorf("failed to check permissions: %w", err)
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// requireContact verifies the contact exists within the organization
func (s *ContactNoteService) requireContact(orgID, contactID uuid.UUID) error {
	_, err := s.contacts.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}
	return nil
}

// toNoteResponse converts a note model to API response
func toNoteResponse(note *models.ContactNote) ContactNoteResponse {
	resp := ContactNoteResponse{
		ID:        note.ID,
		ContactID: note.ContactID,
		UserID:    note.UserID,
		Body:      note.Body,
		CreatedAt: note.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: note.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if note.User.ID != uuid.Nil {
		resp.AuthorName = note.User.FullName
	}
	return resp
}
