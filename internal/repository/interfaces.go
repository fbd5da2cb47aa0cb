package repository

import (
	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetBySlug(slug string) (*models.Organization, error)
	GetAll(limit, offset int) ([]models.Organization, int64, error)
	Update(org *models.Organization) error
	Delete(id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// MembershipRepositoryInterface defines the interface for membership repository operations
type MembershipRepositoryInterface interface {
	Create(membership *models.Membership) error
	GetByOrganizationAndUser(orgID, userID uuid.UUID) (*models.Membership, error)
	GetFirstForUser(userID uuid.UUID) (*models.Membership, error)
	Exists(orgID, userID uuid.UUID) (bool, error)
	ListOrganizationsForUser(userID uuid.UUID) ([]models.Organization, error)
	Delete(orgID, userID uuid.UUID) error
}

// ContactRepositoryInterface defines the interface for contact repository
// operations. Every scoped read or write takes the owning organization id as
// an explicit parameter; there is no ambient scope and no unscoped fallback.
type ContactRepositoryInterface interface {
	Create(contact *models.Contact) error
	GetByID(orgID, id uuid.UUID) (*models.Contact, error)
	GetWithDetails(orgID, id uuid.UUID) (*models.Contact, error)
	ListByOrganization(orgID uuid.UUID, query string, limit, offset int) ([]models.Contact, int64, error)
	FindByEmail(orgID uuid.UUID, email string, excludeID uuid.UUID) (*models.Contact, error)
	Update(contact *models.Contact) error
	Delete(orgID, id uuid.UUID) error
	Duplicate(orgID, sourceID, actingUserID uuid.UUID, avatarPath *string) (*models.Contact, error)
}

// ContactNoteRepositoryInterface defines the interface for contact note repository operations
type ContactNoteRepositoryInterface interface {
	Create(note *models.ContactNote) error
	GetByID(contactID, id uuid.UUID) (*models.ContactNote, error)
	ListByContact(contactID uuid.UUID) ([]models.ContactNote, error)
	Update(note *models.ContactNote) error
	Delete(contactID, id uuid.UUID) error
}

// ContactMetaRepositoryInterface defines the interface for contact meta repository operations
type ContactMetaRepositoryInterface interface {
	Create(meta *models.ContactMeta) error
	GetByID(contactID, id uuid.UUID) (*models.ContactMeta, error)
	ListByContact(contactID uuid.UUID) ([]models.ContactMeta, error)
	CountByContact(contactID uuid.UUID) (int64, error)
	ReplaceForContact(contactID uuid.UUID, pairs []models.ContactMeta) error
	Update(meta *models.ContactMeta) error
	Delete(contactID, id uuid.UUID) error
}
