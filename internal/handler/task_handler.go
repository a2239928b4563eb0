package handler

import (
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Assignees   string  `json:"assignees"`
	StatusName  *string `json:"status"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Assignees   *string `json:"assignees"`
	StatusName  *string `json:"status"`
}

type TaskResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Assignees   string `json:"assignees"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Assignees:   task.Assignees,
		Status:      task.Status.Name,
		CreatedAt:   task.CreatedAt.Format(http.TimeFormat),
		UpdatedAt:   task.UpdatedAt.Format(http.TimeFormat),
	}
}

// List returns the board's tasks, optionally filtered by status names given
// as repeated filterStatuses query parameters
func (h *TaskHandler) List(c *gin.Context) {
	filterStatuses := c.QueryArray("filterStatuses")

	tasks, err := h.tasks.List(c.Request.Context(), c.Param("id"), middleware.RequesterID(c), filterStatuses)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"), taskID, middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	// Title validation happens in the service, after authorization.
	_ = c.ShouldBindJSON(&req)

	task, err := h.tasks.Create(c.Request.Context(), c.Param("id"), middleware.RequesterID(c),
		req.Title, req.Description, req.Assignees, req.StatusName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	_ = c.ShouldBindJSON(&req)

	task, err := h.tasks.Update(c.Request.Context(), c.Param("id"), taskID, middleware.RequesterID(c), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Assignees:   req.Assignees,
		StatusName:  req.StatusName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), c.Param("id"), taskID, middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
