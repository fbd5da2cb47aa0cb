package repository

import (
	"contacthub-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipRepository handles database operations for memberships
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new membership
func (r *MembershipRepository) Create(membership *models.Membership) error {
	return r.db.Create(membership).Error
}

// GetByOrganizationAndUser retrieves the membership of a user in an organization
func (r *MembershipRepository) GetByOrganizationAndUser(orgID, userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.First(&membership, "organization_id = ? AND user_id = ?", orgID, userID).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetFirstForUser retrieves the user's earliest membership. The resolver uses
// this as the default current organization for a fresh session.
func (r *MembershipRepository) GetFirstForUser(userID uuid.UUID) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Exists reports whether the user is a member of the organization
func (r *MembershipRepository) Exists(orgID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Membership{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListOrganizationsForUser retrieves all organizations the user belongs to
func (r *MembershipRepository) ListOrganizationsForUser(userID uuid.UUID) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.
		Joins("JOIN memberships ON memberships.organization_id = organizations.id").
		Where("memberships.user_id = ?", userID).
		Order("memberships.created_at ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

// Delete removes a user's membership in an organization
func (r *MembershipRepository) Delete(orgID, userID uuid.UUID) error {
	return r.db.Delete(&models.Membership{}, "organization_id = ? AND user_id = ?", orgID, userID).Error
}
