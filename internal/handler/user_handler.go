package handler

import (
	"github.com/gin-gonic/gin"

	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *UserHandler) UpdateName(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := h.userService.UpdateName(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// Delete removes the caller's own account and everything it owns.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
