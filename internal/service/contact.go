package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/database/models"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/logger"
	"contacthub-backend/internal/repository"
	"contacthub-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// ContactService handles business logic for contacts. Authorization follows
// the role gate: admins may write, members may only read. The duplicate-email
// guard is always case-insensitive and always scoped to the organization, on
// create and update alike.
type ContactService struct {
	repo      repository.ContactRepositoryInterface
	meta      repository.ContactMetaRepositoryInterface
	gate      *auth.Gate
	blobs     storage.BlobStore
	validator *validator.Validate
	log       *logger.Logger
}

// Ensure ContactService implements ContactServiceInterface
var _ ContactServiceInterface = (*ContactService)(nil)

// NewContactService creates a new contact service
func NewContactService(
	repo repository.ContactRepositoryInterface,
	meta repository.ContactMetaRepositoryInterface,
	gate *auth.Gate,
	blobs storage.BlobStore,
	validator *validator.Validate,
) *ContactService {
	return &ContactService{
		repo:      repo,
		meta:      meta,
		gate:      gate,
		blobs:     blobs,
		validator: validator,
		log:       logger.New(),
	}
}

// MetaPair is one custom key/value entry in contact requests
type MetaPair struct {
	Key   string `json:"key" validate:"required,max=255"`
	Value string `json:"value" validate:"required,max=1000"`
}

// CreateContactRequest represents the request to create a contact
type CreateContactRequest struct {
	FirstName string     `json:"first_name" validate:"required,max=255"`
	LastName  string     `json:"last_name" validate:"required,max=255"`
	Email     *string    `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string    `json:"phone" validate:"omitempty,max=255"`
	Meta      []MetaPair `json:"meta" validate:"omitempty,dive"`
}

// UpdateContactRequest represents the request to update a contact. Meta, when
// present, replaces the contact's whole custom-field set; omitting it leaves
// the existing entries untouched.
type UpdateContactRequest struct {
	FirstName string      `json:"first_name" validate:"required,max=255"`
	LastName  string      `json:"last_name" validate:"required,max=255"`
	Email     *string     `json:"email" validate:"omitempty,email,max=255"`
	Phone     *string     `json:"phone" validate:"omitempty,max=255"`
	Meta      *[]MetaPair `json:"meta" validate:"omitempty,dive"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	AvatarPath     *string   `json:"avatar_path,omitempty"`
	CreatedBy      uuid.UUID `json:"created_by"`
	UpdatedBy      uuid.UUID `json:"updated_by"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}

// ContactDetailResponse is a contact with its notes and meta entries
type ContactDetailResponse struct {
	ContactResponse
	Notes []ContactNoteResponse `json:"notes"`
	Meta  []ContactMetaResponse `json:"meta"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// List retrieves the organization's contacts with optional search
func (s *ContactService) List(orgID, userID uuid.UUID, query string, page, pageSize int) (*ContactListResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionViewAny); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	contacts, total, err := s.repo.ListByOrganization(orgID, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	responses := make([]ContactResponse, len(contacts))
	for i, c := range contacts {
		responses[i] = *s.toResponse(&c)
	}

	return &ContactListResponse{
		Contacts: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get retrieves a contact with its notes and meta entries
func (s *ContactService) Get(orgID, userID, contactID uuid.UUID) (*ContactDetailResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}

	contact, err := s.repo.GetWithDetails(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return s.toDetailResponse(contact), nil
}

// Create creates a contact after running the duplicate-email guard
func (s *ContactService) Create(orgID, userID uuid.UUID, req *CreateContactRequest) (*ContactResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if len(req.Meta) > models.MaxMetaPerContact {
		return nil, apperrors.ErrMetaLimitReached
	}

	email := normalizeEmail(req.Email)
	if email != nil {
		if err := s.checkDuplicateEmail(orgID, userID, *email, uuid.Nil); err != nil {
			return nil, err
		}
	}

	contact := &models.Contact{
		OrganizationID: orgID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          email,
		Phone:          req.Phone,
		CreatedBy:      userID,
		UpdatedBy:      userID,
	}
	for _, pair := range req.Meta {
		contact.Meta = append(contact.Meta, models.ContactMeta{Key: pair.Key, Value: pair.Value})
	}

	if err := s.repo.Create(contact); err != nil {
		return nil, s.translateUniqueViolation(orgID, userID, email, err, "failed to create contact")
	}

	return s.toResponse(contact), nil
}

// Update updates a contact's core fields
func (s *ContactService) Update(orgID, userID, contactID uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionUpdate); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}
	if req.Meta != nil && len(*req.Meta) > models.MaxMetaPerContact {
		return nil, apperrors.ErrMetaLimitReached
	}

	contact, err := s.repo.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	email := normalizeEmail(req.Email)
	if email != nil {
		if err := s.checkDuplicateEmail(orgID, userID, *email, contactID); err != nil {
			return nil, err
		}
	}

	contact.FirstName = req.FirstName
	contact.LastName = req.LastName
	contact.Email = email
	contact.Phone = req.Phone
	contact.UpdatedBy = userID

	if err := s.repo.Update(contact); err != nil {
		return nil, s.translateUniqueViolation(orgID, userID, email, err, "failed to update contact")
	}

	if req.Meta != nil {
		pairs := make([]models.ContactMeta, len(*req.Meta))
		for i, pair := range *req.Meta {
			pairs[i] = models.ContactMeta{Key: pair.Key, Value: pair.Value}
		}
		if err := s.meta.ReplaceForContact(contactID, pairs); err != nil {
			return nil, fmt.Errorf("failed to replace contact meta: %w", err)
		}
	}

	return s.toResponse(contact), nil
}

// Delete removes a contact together with its notes and meta entries
func (s *ContactService) Delete(orgID, userID, contactID uuid.UUID) error {
	if err := s.authorize(orgID, userID, auth.ActionDelete); err != nil {
		return err
	}

	contact, err := s.repo.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("failed to get contact: %w", err)
	}

	if err := s.repo.Delete(orgID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrContactNotFound
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	if contact.AvatarPath != nil {
		if err := s.blobs.Delete(context.Background(), *contact.AvatarPath); err != nil {
			s.log.WithField("contact_id", contactID).Warnf("failed to delete avatar blob: %v", err)
		}
	}

	return nil
}

// Duplicate clones a contact within the organization. The copy keeps every
// scalar field but email, stores its own copy of the avatar blob, copies meta
// verbatim and re-authors the notes to the acting user.
func (s *ContactService) Duplicate(ctx context.Context, orgID, userID, contactID uuid.UUID) (*ContactDetailResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionDuplicate); err != nil {
		return nil, err
	}

	source, err := s.repo.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to load contact: %w", err)
	}

	// The clone gets its own copy of the avatar blob; sharing one path would
	// orphan the survivor when either contact is deleted.
	var avatarPath *string
	if source.AvatarPath != nil {
		copied, copyErr := s.copyAvatarBlob(ctx, *source.AvatarPath)
		if copyErr != nil {
			s.log.WithField("contact_id", contactID).Warnf("failed to copy avatar blob: %v", copyErr)
		} else {
			avatarPath = &copied
		}
	}

	clone, err := s.repo.Duplicate(orgID, contactID, userID, avatarPath)
	if err != nil {
		if avatarPath != nil {
			if delErr := s.blobs.Delete(ctx, *avatarPath); delErr != nil {
				s.log.WithField("contact_id", contactID).Warnf("failed to delete copied avatar blob: %v", delErr)
			}
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to duplicate contact: %w", err)
	}

	detail, err := s.repo.GetWithDetails(orgID, clone.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load duplicated contact: %w", err)
	}

	return s.toDetailResponse(detail), nil
}

// SetAvatar stores a new avatar blob for the contact and drops the old one
func (s *ContactService) SetAvatar(ctx context.Context, orgID, userID, contactID uuid.UUID, filename string, r io.Reader) (*ContactResponse, error) {
	if err := s.authorize(orgID, userID, auth.ActionUpdate); err != nil {
		return nil, err
	}

	contact, err := s.repo.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	path, err := s.blobs.Store(ctx, filename, r)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, apperrors.NewValidationError("avatar", "file exceeds the size limit")
		}
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	old := contact.AvatarPath
	contact.AvatarPath = &path
	contact.UpdatedBy = userID
	if err := s.repo.Update(contact); err != nil {
		return nil, fmt.Errorf("failed to update contact avatar: %w", err)
	}

	if old != nil {
		if err := s.blobs.Delete(ctx, *old); err != nil {
			s.log.WithField("contact_id", contactID).Warnf("failed to delete old avatar blob: %v", err)
		}
	}

	return s.toResponse(contact), nil
}

// OpenAvatar returns a reader over the contact's avatar blob
func (s *ContactService) OpenAvatar(ctx context.Context, orgID, userID, contactID uuid.UUID) (io.ReadCloser, error) {
	if err := s.authorize(orgID, userID, auth.ActionView); err != nil {
		return nil, err
	}

	contact, err := s.repo.GetByID(orgID, contactID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContactNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.AvatarPath == nil {
		return nil, apperrors.NewNotFoundError("avatar")
	}

	rc, err := s.blobs.Open(ctx, *contact.AvatarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar: %w", err)
	}
	return rc, nil
}

// copyAvatarBlob stores a fresh copy of an existing avatar blob and returns
// the new path token
func (s *ContactService) copyAvatarBlob(ctx context.Context, path string) (string, error) {
	rc, err := s.blobs.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return s.blobs.Store(ctx, path, rc)
}

// authorize runs the role gate and maps a denial to an authorization error
func (s *ContactService) authorize(orgID, userID uuid.UUID, action auth.Action) error {
	allowed, err := s.gate.Can(orgID, userID, action)
	if err != nil {
		return fmt.Errorf("failed to check permissions: %w", err)
	}
	if !allowed {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// checkDuplicateEmail looks for another contact in the organization holding
// the same email, case-insensitively. excludeID skips the contact being
// updated.
func (s *ContactService) checkDuplicateEmail(orgID, userID uuid.UUID, email string, excludeID uuid.UUID) error {
	existing, err := s.repo.FindByEmail(orgID, email, excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check duplicate email: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"event":               "duplicate_contact_blocked",
		"organization_id":     orgID,
		"user_id":             userID,
		"existing_contact_id": existing.ID,
	}).Warn("duplicate contact email blocked")

	return apperrors.NewDuplicateEmailError(existing.ID)
}

// translateUniqueViolation converts a Postgres unique-index violation on the
// per-organization email index into a DuplicateEmailError. The index is the
// authoritative guard; this path catches races the pre-insert check misses.
func (s *ContactService) translateUniqueViolation(orgID, userID uuid.UUID, email *string, err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && email != nil {
		existing, findErr := s.repo.FindByEmail(orgID, *email, uuid.Nil)
		if findErr == nil {
			s.log.WithFields(map[string]interface{}{
				"event":               "duplicate_contact_blocked",
				"organization_id":     orgID,
				"user_id":             userID,
				"existing_contact_id": existing.ID,
			}).Warn("duplicate contact email blocked by unique index")
			return apperrors.NewDuplicateEmailError(existing.ID)
		}
		return apperrors.NewDuplicateEmailError(uuid.Nil)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// normalizeEmail trims the email and collapses empty values to nil
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// toResponse converts a contact model to API response
func (s *ContactService) toResponse(c *models.Contact) *ContactResponse {
	return &ContactResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		AvatarPath:     c.AvatarPath,
		CreatedBy:      c.CreatedBy,
		UpdatedBy:      c.UpdatedBy,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      c.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// toDetailResponse converts a contact with preloaded notes and meta
func (s *ContactService) toDetailResponse(c *models.Contact) *ContactDetailResponse {
	detail := &ContactDetailResponse{
		ContactResponse: *s.toResponse(c),
		Notes:           make([]ContactNoteResponse, len(c.Notes)),
		Meta:            make([]ContactMetaResponse, len(c.Meta)),
	}
	for i, note := range c.Notes {
		detail.Notes[i] = toNoteResponse(&note)
	}
	for i, meta := range c.Meta {
		detail.Meta[i] = toMetaResponse(&meta)
	}
	return detail
}
