package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type InviteHandler struct {
	inviteService service.InviteService
}

func NewInviteHandler(inviteService service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

type CreateInviteRequest struct {
	MaxUses   *int       `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Create mints a new invite link for a project.
func (h *InviteHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	invite, err := h.inviteService.Create(c.Request.Context(), projectID, userID, req.MaxUses, req.ExpiresAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, invite)
}

// Fetch is the public, unauthenticated invite preview.
func (h *InviteHandler) Fetch(c *gin.Context) {
	preview, err := h.inviteService.Fetch(c.Request.Context(), c.Param("link_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, preview)
}

// List returns a project's outstanding invites.
func (h *InviteHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	invites, err := h.inviteService.List(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, invites)
}

type UpdateInviteRequest struct {
	MaxUses   *int       `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// UpdateLimits adjusts max_uses and/or expiry; absent fields are unchanged.
func (h *InviteHandler) UpdateLimits(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req UpdateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	invite, err := h.inviteService.UpdateLimits(c.Request.Context(), c.Param("link_id"), userID, req.MaxUses, req.ExpiresAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, invite)
}

// Join consumes an invite and adds the caller to its project.
func (h *InviteHandler) Join(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	projectID, err := h.inviteService.Consume(c.Request.Context(), c.Param("link_id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"project_id": projectID})
}

func (h *InviteHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	if err := h.inviteService.Delete(c.Request.Context(), c.Param("link_id"), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
