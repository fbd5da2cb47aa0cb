package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines the interface for organization service
type OrganizationServiceInterface interface {
	Create(ctx context.Context, sessionKey string, userID uuid.UUID, req *CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByID(orgID, userID uuid.UUID) (*OrganizationResponse, error)
	ListForUser(userID uuid.UUID) ([]OrganizationResponse, error)
	Switch(ctx context.Context, sessionKey string, userID, orgID uuid.UUID) (*OrganizationResponse, error)
}

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	Register(req *RegisterUserRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
}

// ContactServiceInterface defines the interface for contact service
type ContactServiceInterface interface {
	List(orgID, userID uuid.UUID, query string, page, pageSize int) (*ContactListResponse, error)
	Get(orgID, userID, contactID uuid.UUID) (*ContactDetailResponse, error)
	Create(orgID, userID uuid.UUID, req *CreateContactRequest) (*ContactResponse, error)
	Update(orgID, userID, contactID uuid.UUID, req *UpdateContactRequest) (*ContactResponse, error)
	Delete(orgID, userID, contactID uuid.UUID) error
	Duplicate(ctx context.Context, orgID, userID, contactID uuid.UUID) (*ContactDetailResponse, error)
	SetAvatar(ctx context.Context, orgID, userID, contactID uuid.UUID, filename string, r io.Reader) (*ContactResponse, error)
	OpenAvatar(ctx context.Context, orgID, userID, contactID uuid.UUID) (io.ReadCloser, error)
}

// ContactNoteServiceInterface defines the interface for contact note service
type ContactNoteServiceInterface interface {
	List(orgID, userID, contactID uuid.UUID) ([]ContactNoteResponse, error)
	Create(orgID, userID, contactID uuid.UUID, req *ContactNoteRequest) (*ContactNoteResponse, error)
	Update(orgID, userID, contactID, noteID uuid.UUID, req *ContactNoteRequest) (*ContactNoteResponse, error)
	Delete(orgID, userID, contactID, noteID uuid.UUID) error
}

// ContactMetaServiceInterface defines the interface for contact meta service
type ContactMetaServiceInterface interface {
	List(orgID, userID, contactID uuid.UUID) ([]ContactMetaResponse, error)
	Create(orgID, userID, contactID uuid.UUID, req *ContactMetaRequest) (*ContactMetaResponse, error)
	Update(orgID, userID, contactID, metaID uuid.UUID, req *ContactMetaRequest) (*ContactMetaResponse, error)
	Delete(orgID, userID, contactID, metaID uuid.UUID) error
}
