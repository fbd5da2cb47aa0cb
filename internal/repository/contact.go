package repository

import (
	"fmt"

	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for contacts. All scoped
// queries filter by organization_id in SQL, so a contact belonging to another
// organization is indistinguishable from a missing row.
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create creates a new contact
func (r *ContactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

// GetByID retrieves a contact by ID within the given organization
func (r *ContactRepository) GetByID(orgID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetWithDetails retrieves a contact with its notes (newest first, with
// authors) and meta entries preloaded
func (r *ContactRepository) GetWithDetails(orgID, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("contact_notes.created_at DESC")
		}).
		Preload("Notes.User").
		Preload("Meta", func(db *gorm.DB) *gorm.DB {
			return db.Order("contact_meta.key ASC")
		}).
		First(&contact, "organization_id = ? AND id = ?", orgID, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListByOrganization retrieves the organization's contacts with optional
// name/email search and pagination, ordered by last name then first name
func (r *ContactRepository) ListByOrganization(orgID uuid.UUID, query string, limit, offset int) ([]models.Contact, int64, error) {
	var contacts []models.Contact
	var total int64

	base := r.db.Model(&models.Contact{}).Where("organization_id = ?", orgID)
	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("last_name ASC, first_name ASC").
		Limit(limit).Offset(offset).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// FindByEmail retrieves the organization's contact with the given email,
// compared case-insensitively. excludeID skips one contact (the one being
// updated); pass uuid.Nil to match any contact.
func (r *ContactRepository) FindByEmail(orgID uuid.UUID, email string, excludeID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	q := r.db.Where("organization_id = ? AND lower(email) = lower(?)", orgID, email)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update updates a contact
func (r *ContactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

// Delete removes a contact and all of its notes and meta entries in a single
// transaction. Returns gorm.ErrRecordNotFound when the contact does not exist
// in the organization.
func (r *ContactRepository) Delete(orgID, id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var contact models.Contact
		if err := tx.First(&contact, "organization_id = ? AND id = ?", orgID, id).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.ContactMeta{}, "contact_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete contact meta: %w", err)
		}
		if err := tx.Delete(&models.ContactNote{}, "contact_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete contact notes: %w", err)
		}
		if err := tx.Delete(&contact).Error; err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
		return nil
	})
}

// Duplicate clones a contact within its organization in a single transaction.
// The copy carries every scalar field except email (left empty so the unique
// guard cannot trip). avatarPath is the clone's own blob; the caller copies
// the underlying file so the two contacts never share one. Meta entries are
// copied verbatim; notes keep their bodies but are re-authored to the acting
// user.
func (r *ContactRepository) Duplicate(orgID, sourceID, actingUserID uuid.UUID, avatarPath *string) (*models.Contact, error) {
	var clone *models.Contact

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var source models.Contact
		err := tx.
			Preload("Notes", func(db *gorm.DB) *gorm.DB {
				return db.Order("contact_notes.created_at ASC")
			}).
			Preload("Meta").
			First(&source, "organization_id = ? AND id = ?", orgID, sourceID).Error
		if err != nil {
			return err
		}

		clone = &models.Contact{
			OrganizationID: source.OrganizationID,
			FirstName:      source.FirstName,
			LastName:       source.LastName,
			Phone:          source.Phone,
			AvatarPath:     avatarPath,
			CreatedBy:      actingUserID,
			UpdatedBy:      actingUserID,
		}
		if err := tx.Create(clone).Error; err != nil {
			return fmt.Errorf("create duplicate contact: %w", err)
		}

		for _, meta := range source.Meta {
			copied := models.ContactMeta{
				ContactID: clone.ID,
				Key:       meta.Key,
				Value:     meta.Value,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return fmt.Errorf("copy contact meta: %w", err)
			}
		}

		for _, note := range source.Notes {
			copied := models.ContactNote{
				ContactID: clone.ID,
				UserID:    actingUserID,
				Body:      note.Body,
			}
			if err := tx.Create(&copied).Error; err != nil {
				return fmt.Errorf("copy contact note: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return clone, nil
}
