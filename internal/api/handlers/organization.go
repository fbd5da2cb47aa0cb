package handlers

import (
	"errors"
	"net/http"

	"contacthub-backend/internal/api/middleware"
	"contacthub-backend/internal/auth"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrganizationHandler handles HTTP requests for organizations
type OrganizationHandler struct {
	service service.OrganizationServiceInterface
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(service service.OrganizationServiceInterface) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// CreateOrganization handles POST /api/v1/organizations
// @Summary Create a new organization
// @Description Create an organization, grant the creator the admin role and switch the session to it
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body service.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} service.OrganizationResponse "Successfully created organization"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /organizations [post]
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req service.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	org, err := h.service.Create(c.Request.Context(), middleware.SessionKey(userID), userID, &req)
	if err != nil {
		if apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create organization"})
		return
	}

	c.JSON(http.StatusCreated, org)
}

// ListOrganizations handles GET /api/v1/organizations
// @Summary List the user's organizations
// @Description Get all organizations the authenticated user belongs to
// @Tags organizations
// @Produce json
// @Success 200 {array} service.OrganizationResponse "Organizations"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /organizations [get]
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orgs, err := h.service.ListForUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, orgs)
}

// GetOrganization handles GET /api/v1/organizations/:id
// @Summary Get organization by ID
// @Description Get an organization the authenticated user belongs to
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID (UUID)"
// @Success 200 {object} service.OrganizationResponse "Organization"
// @Failure 400 {object} ErrorResponse "Invalid organization ID"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /organizations/{id} [get]
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID: invalid UUID format"})
		return
	}

	org, err := h.service.GetByID(id, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOrganizationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get organization"})
		return
	}

	c.JSON(http.StatusOK, org)
}

// SwitchOrganization handles POST /api/v1/organizations/:id/switch
// @Summary Switch the current organization
// @Description Set the session's current organization after verifying membership
// @Tags organizations
// @Produce json
// @Param id path string true "Organization ID (UUID)"
// @Success 200 {object} service.OrganizationResponse "Now-current organization"
// @Failure 400 {object} ErrorResponse "Invalid organization ID"
// @Failure 403 {object} ErrorResponse "Not a member of the organization"
// @Failure 404 {object} ErrorResponse "Organization not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /organizations/{id}/switch [post]
func (h *OrganizationHandler) SwitchOrganization(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization ID: invalid UUID format"})
		return
	}

	org, err := h.service.Switch(c.Request.Context(), middleware.SessionKey(userID), userID, id)
	if err != nil {
		switch {
		case apperrors.IsAuthorization(err):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrOrganizationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch organization"})
		}
		return
	}

	c.JSON(http.StatusOK, org)
}
