package service

import (
	"context"
	"errors"
	"fmt"

	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/repository"
	"contacthub-backend/internal/tenant"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationService handles business logic for organizations
type OrganizationService struct {
	repo        repository.OrganizationRepositoryInterface
	memberships repository.MembershipRepositoryInterface
	resolver    *tenant.Resolver
	validator   *validator.Validate
}

// Ensure OrganizationService implements OrganizationServiceInterface
var _ OrganizationServiceInterface = (*OrganizationService)(nil)

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	repo repository.OrganizationRepositoryInterface,
	memberships repository.MembershipRepositoryInterface,
	resolver *tenant.Resolver,
	validator *validator.Validate,
) *OrganizationService {
	return &OrganizationService{
		repo:        repo,
		memberships: memberships,
		resolver:    resolver,
		validator:   validator,
	}
}

// CreateOrganizationRequest represents the request to create an organization
type CreateOrganizationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// Create creates an organization, makes the creator its admin and switches the
// session's current organization to it
func (s *OrganizationService) Create(ctx context.Context, sessionKey string, userID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("name", err.Error())
	}

	slug, err := s.uniqueSlug(req.Name)
	if err != nil {
		return nil, err
	}

	org := &models.Organization{
		Name:        req.Name,
		Slug:        slug,
		OwnerUserID: userID,
	}
	if err := s.repo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	membership := &models.Membership{
		OrganizationID: org.ID,
		UserID:         userID,
		Role:           models.MembershipRoleAdmin,
	}
	if err := s.memberships.Create(membership); err != nil {
		return nil, fmt.Errorf("failed to create admin membership: %w", err)
	}

	if err := s.resolver.Set(ctx, sessionKey, org.ID); err != nil {
		return nil, fmt.Errorf("failed to set current organization: %w", err)
	}

	return s.toResponse(org), nil
}

// GetByID retrieves an organization the user belongs to
func (s *OrganizationService) GetByID(orgID, userID uuid.UUID) (*OrganizationResponse, error) {
	member, err := s.memberships.Exists(orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return nil, apperrors.ErrOrganizationNotFound
	}

	org, err := s.repo.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return s.toResponse(org), nil
}

// ListForUser retrieves all organizations the user belongs to
func (s *OrganizationService) ListForUser(userID uuid.UUID) ([]OrganizationResponse, error) {
	orgs, err := s.memberships.ListOrganizationsForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}

	responses := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		responses[i] = *s.toResponse(&org)
	}
	return responses, nil
}

// Switch changes the session's current organization after verifying the user
// is a member of the target
func (s *OrganizationService) Switch(ctx context.Context, sessionKey string, userID, orgID uuid.UUID) (*OrganizationResponse, error) {
	member, err := s.memberships.Exists(orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return nil, apperrors.ErrNotOrganizationMember
	}

	org, err := s.repo.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	if err := s.resolver.Set(ctx, sessionKey, orgID); err != nil {
		return nil, fmt.Errorf("failed to set current organization: %w", err)
	}

	return s.toResponse(org), nil
}

// uniqueSlug derives a slug from the name, suffixing a counter on collision
func (s *OrganizationService) uniqueSlug(name string) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "organization"
	}

	slug := base
	for i := 2; ; i++ {
		_, err := s.repo.GetBySlug(slug)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// toResponse converts an organization model to response
func (s *OrganizationService) toResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		OwnerUserID: org.OwnerUserID,
		CreatedAt:   org.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   org.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
