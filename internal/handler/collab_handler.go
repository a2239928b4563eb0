package handler

import (
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollabHandler struct {
	collabs *service.CollabService
}

func NewCollabHandler(collabs *service.CollabService) *CollabHandler {
	return &CollabHandler{collabs: collabs}
}

type AddCollaboratorRequest struct {
	Email       *string `json:"email"`
	AccessRight *string `json:"access_right"`
}

type UpdateCollaboratorRequest struct {
	AccessRight *string `json:"access_right"`
}

type CollaboratorResponse struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessRight string `json:"access_right"`
	Invitation  string `json:"invitation"`
	AddedAt     string `json:"added_at"`
}

func toCollaboratorResponse(collab *model.Collaboration) CollaboratorResponse {
	return CollaboratorResponse{
		UserID:      collab.UserID.String(),
		Name:        collab.Name,
		Email:       collab.Email,
		AccessRight: collab.AccessRight,
		Invitation:  collab.Invitation,
		AddedAt:     collab.AddedAt.Format(http.TimeFormat),
	}
}

func (h *CollabHandler) List(c *gin.Context) {
	collabs, err := h.collabs.List(c.Request.Context(), c.Param("id"), middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CollaboratorResponse, len(collabs))
	for i := range collabs {
		response[i] = toCollaboratorResponse(&collabs[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *CollabHandler) GetByID(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	collab, err := h.collabs.Get(c.Request.Context(), c.Param("id"), targetUserID, middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCollaboratorResponse(collab))
}

// Add invites a user as a collaborator by email. Owner only.
func (h *CollabHandler) Add(c *gin.Context) {
	var req AddCollaboratorRequest
	// Input validation happens in the service, after authorization.
	_ = c.ShouldBindJSON(&req)

	collab, err := h.collabs.Add(c.Request.Context(), c.Param("id"), middleware.RequesterID(c), req.Email, req.AccessRight)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCollaboratorResponse(collab))
}

func (h *CollabHandler) Update(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req UpdateCollaboratorRequest
	_ = c.ShouldBindJSON(&req)

	collab, err := h.collabs.Update(c.Request.Context(), c.Param("id"), targetUserID, middleware.RequesterID(c), req.AccessRight)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCollaboratorResponse(collab))
}

// Accept lets the requester accept their own pending invitation
func (h *CollabHandler) Accept(c *gin.Context) {
	collab, err := h.collabs.Accept(c.Request.Context(), c.Param("id"), middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCollaboratorResponse(collab))
}

func (h *CollabHandler) Remove(c *gin.Context) {
	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	if err := h.collabs.Remove(c.Request.Context(), c.Param("id"), targetUserID, middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed successfully"})
}
