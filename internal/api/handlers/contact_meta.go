package handlers

import (
	"net/http"

	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactMetaHandler handles HTTP requests for contact custom fields
type ContactMetaHandler struct {
	service service.ContactMetaServiceInterface
}

// NewContactMetaHandler creates a new contact meta handler
func NewContactMetaHandler(service service.ContactMetaServiceInterface) *ContactMetaHandler {
	return &ContactMetaHandler{service: service}
}

// ListMeta handles GET /api/v1/contacts/:id/meta
// @Summary List a contact's custom fields
// @Description List the contact's key/value custom fields
// @Tags meta
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {array} service.ContactMetaResponse "Custom fields"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/meta [get]
func (h *ContactMetaHandler) ListMeta(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	entries, err := h.service.List(orgID, userID, contactID)
	if err != nil {
		respondContactError(c, err, "Failed to list custom fields")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateMeta handles POST /api/v1/contacts/:id/meta
// @Summary Add a custom field
// @Description Add a key/value custom field to the contact. At most five fields are allowed per contact.
// @Tags meta
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param meta body service.ContactMetaRequest true "Custom field data"
// @Success 201 {object} service.ContactMetaResponse "Created custom field"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 422 {object} ErrorResponse "Custom field limit reached"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/meta [post]
func (h *ContactMetaHandler) CreateMeta(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	var req service.ContactMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	meta, err := h.service.Create(orgID, userID, contactID, &req)
	if err != nil {
		respondContactError(c, err, "Failed to create custom field")
		return
	}

	c.JSON(http.StatusCreated, meta)
}

// UpdateMeta handles PUT /api/v1/contacts/:id/meta/:metaId
// @Summary Update a custom field
// @Description Edit a custom field's key or value
// @Tags meta
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param metaId path string true "Custom field ID (UUID)"
// @Param meta body service.ContactMetaRequest true "Custom field data"
// @Success 200 {object} service.ContactMetaResponse "Updated custom field"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Custom field not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/meta/{metaId} [put]
func (h *ContactMetaHandler) UpdateMeta(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}
	metaID, err := uuid.Parse(c.Param("metaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid custom field ID: invalid UUID format"})
		return
	}

	var req service.ContactMetaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	meta, err := h.service.Update(orgID, userID, contactID, metaID, &req)
	if err != nil {
		respondContactError(c, err, "Failed to update custom field")
		return
	}

	c.JSON(http.StatusOK, meta)
}

// DeleteMeta handles DELETE /api/v1/contacts/:id/meta/:metaId
// @Summary Delete a custom field
// @Description Remove a custom field from the contact
// @Tags meta
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param metaId path string true "Custom field ID (UUID)"
// @Success 204 "Custom field deleted"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Custom field not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/meta/{metaId} [delete]
func (h *ContactMetaHandler) DeleteMeta(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}
	metaID, err := uuid.Parse(c.Param("metaId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid custom field ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(orgID, userID, contactID, metaID); err != nil {
		respondContactError(c, err, "Failed to delete custom field")
		return
	}

	c.Status(http.StatusNoContent)
}
