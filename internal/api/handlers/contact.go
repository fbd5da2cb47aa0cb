package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"contacthub-backend/internal/api/middleware"
	"contacthub-backend/internal/auth"
	apperrors "contacthub-backend/internal/errors"
	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	service service.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service service.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// scope extracts the current organization and user from the request context.
// Both are guaranteed by the auth and current-organization middleware; missing
// values mean a route was wired without them.
func scope(c *gin.Context) (orgID, userID uuid.UUID, ok bool) {
	userID, ok = auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return uuid.Nil, uuid.Nil, false
	}
	orgID, ok = middleware.GetOrganizationID(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "No current organization for this session",
			"code":  "NO_CURRENT_ORGANIZATION",
		})
		return uuid.Nil, uuid.Nil, false
	}
	return orgID, userID, true
}

// respondContactError maps service errors to HTTP responses shared by the
// contact, note and meta handlers
func respondContactError(c *gin.Context, err error, fallback string) {
	var dupErr *apperrors.DuplicateEmailError
	switch {
	case errors.As(err, &dupErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":               dupErr.Error(),
			"code":                "DUPLICATE_EMAIL",
			"existing_contact_id": dupErr.ExistingContactID,
		})
	case errors.Is(err, apperrors.ErrMetaLimitReached):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": "META_LIMIT_REACHED"})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// ListContacts handles GET /api/v1/contacts
// @Summary List contacts
// @Description List the current organization's contacts with optional search and pagination
// @Tags contacts
// @Produce json
// @Param q query string false "Search over first name, last name and email"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ContactListResponse "Contacts"
// @Failure 403 {object} ErrorResponse "No current organization or permission denied"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	contacts, err := h.service.List(orgID, userID, c.Query("q"), page, pageSize)
	if err != nil {
		respondContactError(c, err, "Failed to list contacts")
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// GetContact handles GET /api/v1/contacts/:id
// @Summary Get a contact
// @Description Get a contact with its notes and custom fields
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {object} service.ContactDetailResponse "Contact"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	contact, err := h.service.Get(orgID, userID, id)
	if err != nil {
		respondContactError(c, err, "Failed to get contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// CreateContact handles POST /api/v1/contacts
// @Summary Create a contact
// @Description Create a contact in the current organization. Email, when present, must be unique within the organization (case-insensitive).
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body service.CreateContactRequest true "Contact data"
// @Success 201 {object} service.ContactResponse "Successfully created contact"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 409 {object} ErrorResponse "Duplicate email in organization"
// @Failure 422 {object} ErrorResponse "Custom field limit reached"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Create(orgID, userID, &req)
	if err != nil {
		respondContactError(c, err, "Failed to create contact")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// UpdateContact handles PUT /api/v1/contacts/:id
// @Summary Update a contact
// @Description Update a contact's core fields. The duplicate-email guard excludes the contact itself.
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param contact body service.UpdateContactRequest true "Contact data"
// @Success 200 {object} service.ContactResponse "Updated contact"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 409 {object} ErrorResponse "Duplicate email in organization"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Update(orgID, userID, id, &req)
	if err != nil {
		respondContactError(c, err, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/v1/contacts/:id
// @Summary Delete a contact
// @Description Delete a contact with its notes and custom fields in one transaction
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 204 "Contact deleted"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(orgID, userID, id); err != nil {
		respondContactError(c, err, "Failed to delete contact")
		return
	}

	c.Status(http.StatusNoContent)
}

// DuplicateContact handles POST /api/v1/contacts/:id/duplicate
// @Summary Duplicate a contact
// @Description Clone a contact without its email and avatar. Custom fields are copied verbatim; notes are re-authored to the acting user.
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 201 {object} service.ContactDetailResponse "Duplicated contact"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/duplicate [post]
func (h *ContactHandler) DuplicateContact(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	clone, err := h.service.Duplicate(c.Request.Context(), orgID, userID, id)
	if err != nil {
		respondContactError(c, err, "Failed to duplicate contact")
		return
	}

	c.JSON(http.StatusCreated, clone)
}

// UploadAvatar handles PUT /api/v1/contacts/:id/avatar
// @Summary Upload a contact avatar
// @Description Store an avatar image for the contact, replacing any previous one
// @Tags contacts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} service.ContactResponse "Updated contact"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 403 {object} ErrorResponse "Permission denied"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/avatar [put]
func (h *ContactHandler) UploadAvatar(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar file"})
		return
	}
	defer file.Close()

	contact, err := h.service.SetAvatar(c.Request.Context(), orgID, userID, id, header.Filename, file)
	if err != nil {
		respondContactError(c, err, "Failed to store avatar")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// GetAvatar handles GET /api/v1/contacts/:id/avatar
// @Summary Download a contact avatar
// @Description Stream the contact's avatar image
// @Tags contacts
// @Produce octet-stream
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {file} binary "Avatar image"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 404 {object} ErrorResponse "Contact or avatar not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/avatar [get]
func (h *ContactHandler) GetAvatar(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	rc, err := h.service.OpenAvatar(c.Request.Context(), orgID, userID, id)
	if err != nil {
		respondContactError(c, err, "Failed to open avatar")
		return
	}
	defer rc.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
