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

// ContactMetaService handles business logic for contact meta entries. Meta
// entries are contact data, so writes follow the same admin-only rule as the
// contact itself. The per-contact cap is enforced here, not by the database.
type ContactMetaService struct {
	repo      repository.ContactMetaRepositoryInterface
	contacts  repository.ContactRepositoryInterface
	gate      *auth.Gate
	validator *validator.Validate
}

// Ensure ContactMetaService implements ContactMetaServiceInterface
var _ ContactMetaServiceInterface = (*ContactMetaService)(nil)

// NewContactMetaService creates a new contact meta service
func NewContactMetaService(
	repo repository.ContactMetaRepositoryInterface,
	contacts repository.ContactRepositoryInterface,
	gate *auth.Gate,
	validator *validator.Validate,
) *ContactMetaService {
	return &ContactMetaService{
		repo:      repo,
		contacts:  contacts,
		gate:      gate,
		validator: validator,
	}
}

// ContactMetaRequest represents the request to create or update a meta entry
type ContactMetaRequest struct {
	Key   string `json:"key" validate:"required,max=255"`
	Value string `json:"value" validate:"required,max=1000"`
}

// ContactMetaResponse represents a meta entry in API responses
type ContactMetaResponse struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contact_id"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
}

// List retrieves the contact's meta entries
func (s *ContactMetaService) List(orgID, userID, contactID uuid.UUID) ([]ContactMetaResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByContact(contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meta entries: %w", err)
	}

	responses := make([]ContactMetaResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toMetaResponse(&entry)
	}
	return responses, nil
}

// Create adds a meta entry, enforcing the per-contact cap
func (s *ContactMetaService) Create(orgID, userID, contactID uuid.UUID, req *ContactMetaRequest) (*ContactMetaResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByContact(contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to count meta entries: %w", err)
	}
	if count >= models.MaxMetaPerContact {
		return nil, apperrors.ErrMetaLimitReached
	}

	meta := &models.ContactMeta{
		ContactID: contactID,
		Key:       req.Key,
		Value:     req.Value,
	}
	if err := s.repo.Create(meta); err != nil {
		return nil, fmt.Errorf("failed to create meta entry: %w", err)
	}

	resp := toMetaResponse(meta)
	return &resp, nil
}

// Update edits a meta entry
func (s *ContactMetaService) Update(orgID, userID, contactID, metaID uuid.UUID, req *ContactMetaRequest) (*ContactMetaResponse, error) {
	if err := s.requireAction(orgID, userID, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return nil, err
	}

	meta, err := s.repo.GetByID(contactID, metaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactMetaNotFound
		}
		return nil, fmt.Errorf("failed to get meta entry: %w", err)
	}

	meta.Key = req.Key
	meta.Value = req.Value
	if err := s.repo.Update(meta); err != nil {
		return nil, fmt.Errorf("failed to update meta entry: %w", err)
	}

	resp := toMetaResponse(meta)
	return &resp, nil
}

// Delete removes a meta entry
func (s *ContactMetaService) Delete(orgID, userID, contactID, metaID uuid.UUID) error {
	if err := s.requireAction(orgID, userID, auth.ActionUpdate); err != nil {
		return err
	}
	if err := s.requireContact(orgID, contactID); err != nil {
		return err
	}

	_, err := s.repo.GetByID(contactID, metaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactMetaNotFound
		}
		return fmt.Errorf("failed to get meta entry: %w", err)
	}

	if err := s.repo.Delete(contactID, metaID); err != nil {
		return fmt.Errorf("failed to delete meta entry: %w", err)
	}
	return nil
}

func (s *ContactMetaService) requireAction(orgID, userID uuid.UUID, action auth.Action) error {
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
func (s *ContactMetaService) requireContact(orgID, contactID uuid.UUID) error {
	_, err := s.contacts.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}
	return nil
}

// toMetaResponse converts a meta model to API response
func toMetaResponse(meta *models.ContactMeta) ContactMetaResponse {
	return ContactMetaResponse{
		ID:        meta.ID,
		ContactID: meta.ContactID,
		Key:       meta.Key,
		Value:     meta.Value,
	}
}
