package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskhive/projecthub/internal/model"
	"taskhive/projecthub/internal/service"
	"taskhive/projecthub/pkg/response"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Priority    model.TaskPriority `json:"priority"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), projectID, userID, req.Title, req.Description, req.Priority)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), projectID, taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), projectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, tasks)
}

type UpdateTaskRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Priority    *model.TaskPriority `json:"priority,omitempty"`
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), projectID, taskID, userID, req.Title, req.Description, req.Priority)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), projectID, taskID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *TaskHandler) Assign(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}
	assigneeID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user_id")
		return
	}

	if err := h.taskService.Assign(c.Request.Context(), projectID, taskID, assigneeID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *TaskHandler) Unassign(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}
	assigneeID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "invalid user_id")
		return
	}

	if err := h.taskService.Unassign(c.Request.Context(), projectID, taskID, assigneeID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

type CreateStageRequest struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

func (h *TaskHandler) AddStage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}

	var req CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	stage, err := h.taskService.AddStage(c.Request.Context(), projectID, taskID, userID, req.Title, req.Position)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stage)
}

type UpdateStageRequest struct {
	Done bool `json:"done"`
}

func (h *TaskHandler) UpdateStage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}
	stageID, ok := uintParam(c, "stage_id")
	if !ok {
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	stage, err := h.taskService.SetStageDone(c.Request.Context(), projectID, taskID, stageID, userID, req.Done)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stage)
}

func (h *TaskHandler) DeleteStage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		response.Unauthorized(c, "invalid user context")
		return
	}
	projectID, ok := uintParam(c, "project_id")
	if !ok {
		return
	}
	taskID, ok := uintParam(c, "task_id")
	if !ok {
		return
	}
	stageID, ok := uintParam(c, "stage_id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteStage(c.Request.Context(), projectID, taskID, stageID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}
