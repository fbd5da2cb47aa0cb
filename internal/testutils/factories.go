package testutils

import (
	"time"

	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Organization",
		Slug:        "test-organization-" + id.String()[:8],
		OwnerUserID: uuid.New(),
	}
}

// WithName sets a custom name (and matching slug) for the organization
func (f *OrganizationFactory) WithName(name string) *models.Organization {
	org := f.Create()
	org.Name = name
	return org
}

// WithOwner sets the owner user ID for the organization
func (f *OrganizationFactory) WithOwner(ownerID uuid.UUID) *models.Organization {
	org := f.Create()
	org.OwnerUserID = ownerID
	return org
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create() *models.User {
	id := uuid.New()

	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		// Unique email per user to avoid collisions between tests
		Email:    "user-" + id.String()[:8] + "@test.com",
		FullName: "John Doe",
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(email string) *models.User {
	user := f.Create()
	user.Email = email
	return user
}

// WithFullName sets a custom full name for the user
func (f *UserFactory) WithFullName(name string) *models.User {
	user := f.Create()
	user.FullName = name
	return user
}

// MembershipFactory provides methods to create test Membership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a test Membership with default values
func (f *MembershipFactory) Create() *models.Membership {
	return &models.Membership{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		UserID:         uuid.New(),
		Role:           models.MembershipRoleMember,
	}
}

// ForUser links the membership to an organization and user
func (f *MembershipFactory) ForUser(orgID, userID uuid.UUID) *models.Membership {
	m := f.Create()
	m.OrganizationID = orgID
	m.UserID = userID
	return m
}

// AdminFor links an admin membership to an organization and user
func (f *MembershipFactory) AdminFor(orgID, userID uuid.UUID) *models.Membership {
	m := f.ForUser(orgID, userID)
	m.Role = models.MembershipRoleAdmin
	return m
}

// ContactFactory provides methods to create test Contact data
type ContactFactory struct{}

// NewContactFactory creates a new ContactFactory
func NewContactFactory() *ContactFactory {
	return &ContactFactory{}
}

// Create creates a test Contact with default values
func (f *ContactFactory) Create() *models.Contact {
	id := uuid.New()
	email := "contact-" + id.String()[:8] + "@test.com"
	phone := "+1-555-0123"
	actor := uuid.New()

	return &models.Contact{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		FirstName:      "Jane",
		LastName:       "Smith",
		Email:          &email,
		Phone:          &phone,
		CreatedBy:      actor,
		UpdatedBy:      actor,
	}
}

// WithOrganization sets the organization ID for the contact
func (f *ContactFactory) WithOrganization(orgID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.OrganizationID = orgID
	return contact
}

// WithEmail sets a custom email for the contact
func (f *ContactFactory) WithEmail(email string) *models.Contact {
	contact := f.Create()
	contact.Email = &email
	return contact
}

// WithoutEmail clears the email so the contact has no address
func (f *ContactFactory) WithoutEmail() *models.Contact {
	contact := f.Create()
	contact.Email = nil
	return contact
}

// WithName sets a custom first and last name for the contact
func (f *ContactFactory) WithName(first, last string) *models.Contact {
	contact := f.Create()
	contact.FirstName = first
	contact.LastName = last
	return contact
}

// WithCreator sets both audit fields to the given user
func (f *ContactFactory) WithCreator(userID uuid.UUID) *models.Contact {
	contact := f.Create()
	contact.CreatedBy = userID
	contact.UpdatedBy = userID
	return contact
}

// ContactNoteFactory provides methods to create test ContactNote data
type ContactNoteFactory struct{}

// NewContactNoteFactory creates a new ContactNoteFactory
func NewContactNoteFactory() *ContactNoteFactory {
	return &ContactNoteFactory{}
}

// Create creates a test ContactNote with default values
func (f *ContactNoteFactory) Create() *models.ContactNote {
	return &models.ContactNote{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ContactID: uuid.New(),
		UserID:    uuid.New(),
		Body:      "Called about the renewal, follow up next week.",
	}
}

// ForContact links the note to a contact and author
func (f *ContactNoteFactory) ForContact(contactID, authorID uuid.UUID) *models.ContactNote {
	note := f.Create()
	note.ContactID = contactID
	note.UserID = authorID
	return note
}

// WithBody sets a custom body for the note
func (f *ContactNoteFactory) WithBody(body string) *models.ContactNote {
	note := f.Create()
	note.Body = body
	return note
}

// ContactMetaFactory provides methods to create test ContactMeta data
type ContactMetaFactory struct{}

// NewContactMetaFactory creates a new ContactMetaFactory
func NewContactMetaFactory() *ContactMetaFactory {
	return &ContactMetaFactory{}
}

// Create creates a test ContactMeta with default values
func (f *ContactMetaFactory) Create() *models.ContactMeta {
	return &models.ContactMeta{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ContactID: uuid.New(),
		Key:       "linkedin",
		Value:     "https://linkedin.com/in/jane-smith",
	}
}

// ForContact links the meta pair to a contact
func (f *ContactMetaFactory) ForContact(contactID uuid.UUID) *models.ContactMeta {
	meta := f.Create()
	meta.ContactID = contactID
	return meta
}

// WithPair sets a custom key and value
func (f *ContactMetaFactory) WithPair(key, value string) *models.ContactMeta {
	meta := f.Create()
	meta.Key = key
	meta.Value = value
	return meta
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	User         *UserFactory
	Membership   *MembershipFactory
	Contact      *ContactFactory
	ContactNote  *ContactNoteFactory
	ContactMeta  *ContactMetaFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		User:         NewUserFactory(),
		Membership:   NewMembershipFactory(),
		Contact:      NewContactFactory(),
		ContactNote:  NewContactNoteFactory(),
		ContactMeta:  NewContactMetaFactory(),
	}
}

// CreateTenant creates an organization with an admin user and membership,
// the common starting point for scoped tests
func (fs *FactorySet) CreateTenant() (*models.Organization, *models.User, *models.Membership) {
	user := fs.User.Create()
	org := fs.Organization.WithOwner(user.ID)
	membership := fs.Membership.AdminFor(org.ID, user.ID)
	return org, user, membership
}
