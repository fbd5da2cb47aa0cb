package handlers

import (
	"net/http"

	"contacthub-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactNoteHandler handles HTTP requests for contact notes
type ContactNoteHandler struct {
	service service.ContactNoteServiceInterface
}

// NewContactNoteHandler creates a new contact note handler
func NewContactNoteHandler(service service.ContactNoteServiceInterface) *ContactNoteHandler {
	return &ContactNoteHandler{service: service}
}

// ListNotes handles GET /api/v1/contacts/:id/notes
// @Summary List a contact's notes
// @Description List the contact's notes with their authors, newest first
// @Tags notes
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {array} service.ContactNoteResponse "Notes"
// @Failure 400 {object} ErrorResponse "Invalid contact ID"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/notes [get]
func (h *ContactNoteHandler) ListNotes(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	notes, err := h.service.List(orgID, userID, contactID)
	if err != nil {
		respondContactError(c, err, "Failed to list notes")
		return
	}

	c.JSON(http.StatusOK, notes)
}

// CreateNote handles POST /api/v1/contacts/:id/notes
// @Summary Add a note to a contact
// @Description Create a note on the contact authored by the acting user
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param note body service.ContactNoteRequest true "Note data"
// @Success 201 {object} service.ContactNoteResponse "Created note"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 404 {object} ErrorResponse "Contact not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/notes [post]
func (h *ContactNoteHandler) CreateNote(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}

	var req service.ContactNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.service.Create(orgID, userID, contactID, &req)
	if err != nil {
		respondContactError(c, err, "Failed to create note")
		return
	}

	c.JSON(http.StatusCreated, note)
}

// UpdateNote handles PUT /api/v1/contacts/:id/notes/:noteId
// @Summary Update a note
// @Description Edit a note's body. Only the note's author may edit it.
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param noteId path string true "Note ID (UUID)"
// @Param note body service.ContactNoteRequest true "Note data"
// @Success 200 {object} service.ContactNoteResponse "Updated note"
// @Failure 400 {object} ErrorResponse "Invalid request body"
// @Failure 403 {object} ErrorResponse "Not the note author"
// @Failure 404 {object} ErrorResponse "Note not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/notes/{noteId} [put]
func (h *ContactNoteHandler) UpdateNote(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID: invalid UUID format"})
		return
	}

	var req service.ContactNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.service.Update(orgID, userID, contactID, noteID, &req)
	if err != nil {
		respondContactError(c, err, "Failed to update note")
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote handles DELETE /api/v1/contacts/:id/notes/:noteId
// @Summary Delete a note
// @Description Remove a note. Only the note's author may delete it.
// @Tags notes
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param noteId path string true "Note ID (UUID)"
// @Success 204 "Note deleted"
// @Failure 400 {object} ErrorResponse "Invalid ID"
// @Failure 403 {object} ErrorResponse "Not the note author"
// @Failure 404 {object} ErrorResponse "Note not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id}/notes/{noteId} [delete]
func (h *ContactNoteHandler) DeleteNote(c *gin.Context) {
	orgID, userID, ok := scope(c)
	if !ok {
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact ID: invalid UUID format"})
		return
	}
	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(orgID, userID, contactID, noteID); err != nil {
		respondContactError(c, err, "Failed to delete note")
		return
	}

	c.Status(http.StatusNoContent)
}
