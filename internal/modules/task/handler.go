package task

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"taskhub/internal/domain"
	"taskhub/internal/middleware"
	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	taskGroup := protected.Group("/tasks")
	{
		taskGroup.GET("", h.List)
		taskGroup.POST("", h.Create)
		taskGroup.PUT("/:taskId", h.Update)
		taskGroup.DELETE("/:taskId", h.Delete)
	}
}

// List returns the authenticated user's tasks, optionally filtered by ?q=.
// @Summary		List or search tasks
// @Tags		Tasks
// @Security	BearerAuth
// @Produce		json
// @Param		q	query	string	false	"search over title and description"
// @Success		200	{object}	map[string]interface{}
// @Router		/tasks [get]
func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	username := c.GetString(middleware.ContextUsername)

	tasks, err := h.service.List(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Tasks fetched successfully for user %s", username),
		"tasks":   out,
	})
}

// Create adds a task for the authenticated user.
// @Summary		Create task
// @Tags		Tasks
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		body	body	CreateTaskRequest	true	"payload"
// @Success		201	{object}	map[string]interface{}
// @Router		/tasks [post]
func (h *Handler) Create(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"data":    toTaskResponse(created),
	})
}

// Update modifies an owned task.
// @Summary		Update task
// @Tags		Tasks
// @Security	BearerAuth
// @Accept		json
// @Produce		json
// @Param		taskId	path	int					true	"task id"
// @Param		body	body	UpdateTaskRequest	true	"payload"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/tasks/{taskId} [put]
func (h *Handler) Update(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), taskID, userID, req)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "Task not found or does not belong to user")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task modified successfully",
		"data":    toTaskResponse(updated),
	})
}

// Delete removes an owned task.
// @Summary		Delete task
// @Tags		Tasks
// @Security	BearerAuth
// @Produce		json
// @Param		taskId	path	int	true	"task id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/tasks/{taskId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	taskID, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), taskID, userID); err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, "Task not found or does not belong to user")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	response.Message(c, http.StatusOK, "Task deleted successfully")
}

func toTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		TaskID:      t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if len(t.TaskImage) > 0 {
		resp.TaskImage = fmt.Sprintf("data:%s;base64,%s",
			t.TaskImageType, base64.StdEncoding.EncodeToString(t.TaskImage))
	}
	return resp
}
