package handler

import (
	"github.com/gin-gonic/gin"

	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type MembershipHandler struct {
	membershipService service.MembershipService
}

func NewMembershipHandler(membershipService service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	members, err := h.membershipService.List(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, members)
}

// Remove kicks a member or lets a non-owner member leave.
func (h *MembershipHandler) Remove(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	membershipID, ok := uintParam(c, "membership_id")
	if !ok {
		return
	}

	project, err := h.membershipService.Remove(c.Request.Context(), projectID, membershipID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

type ChangeRoleRequest struct {
	Role model.MemberRole `json:"role" binding:"required"`
}

func (h *MembershipHandler) ChangeRole(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	membershipID, ok := uintParam(c, "membership_id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	membership, err := h.membershipService.ChangeRole(c.Request.Context(), projectID, membershipID, req.Role, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, membership)
}
