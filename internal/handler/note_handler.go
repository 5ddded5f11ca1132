package handler

import (
	"github.com/gin-gonic/gin"

	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type NoteHandler struct {
	noteService service.NoteService
}

func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type CreateNoteRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *NoteHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), projectID, userID, req.Body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, note)
}

func (h *NoteHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	notes, err := h.noteService.List(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, notes)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	noteID, ok := uintParam(c, "note_id")
	if !ok {
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), projectID, noteID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
