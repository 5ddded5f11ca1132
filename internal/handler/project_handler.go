package handler

import (
	"github.com/gin-gonic/gin"

	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) ListMine(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}

	projects, err := h.projectService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, projects)
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *ProjectHandler) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), projectID, userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), projectID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
