package handler

import (
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	statuses *service.StatusService
}

func NewStatusHandler(statuses *service.StatusService) *StatusHandler {
	return &StatusHandler{statuses: statuses}
}

type CreateStatusRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateStatusRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type StatusResponse struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toStatusResponse(status *model.Status) StatusResponse {
	return StatusResponse{
		ID:          status.ID,
		Name:        status.Name,
		Description: status.Description,
	}
}

func (h *StatusHandler) List(c *gin.Context) {
	statuses, err := h.statuses.List(c.Request.Context(), c.Param("id"), middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]StatusResponse, len(statuses))
	for i := range statuses {
		response[i] = toStatusResponse(&statuses[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *StatusHandler) GetByID(c *gin.Context) {
	statusID, err := strconv.Atoi(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	status, err := h.statuses.Get(c.Request.Context(), c.Param("id"), statusID, middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(status))
}

func (h *StatusHandler) Create(c *gin.Context) {
	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.statuses.Create(c.Request.Context(), c.Param("id"), middleware.RequesterID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toStatusResponse(status))
}

func (h *StatusHandler) Update(c *gin.Context) {
	statusID, err := strconv.Atoi(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status, err := h.statuses.Update(c.Request.Context(), c.Param("id"), statusID, middleware.RequesterID(c), service.StatusPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toStatusResponse(status))
}

func (h *StatusHandler) Delete(c *gin.Context) {
	statusID, err := strconv.Atoi(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	if err := h.statuses.Delete(c.Request.Context(), c.Param("id"), statusID, middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status deleted successfully"})
}

// DeleteAndTransfer moves every task on the status to another status before
// deleting it
func (h *StatusHandler) DeleteAndTransfer(c *gin.Context) {
	statusID, err := strconv.Atoi(c.Param("statusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}
	newStatusID, err := strconv.Atoi(c.Param("newStatusId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status ID format"})
		return
	}

	if err := h.statuses.DeleteAndTransfer(c.Request.Context(), c.Param("id"), statusID, newStatusID, middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status deleted and tasks transferred successfully"})
}
