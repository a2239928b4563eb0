package handler

import (
	"net/http"
	"strconv"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	attachments *service.AttachmentService
}

func NewAttachmentHandler(attachments *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments}
}

type AttachmentResponse struct {
	ID         int    `json:"id"`
	FileName   string `json:"file_name"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

func toAttachmentResponse(attachment *model.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:         attachment.ID,
		FileName:   attachment.FileName,
		Size:       attachment.Size,
		UploadedAt: attachment.UploadedAt.Format(http.TimeFormat),
	}
}

func (h *AttachmentHandler) List(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	attachments, err := h.attachments.List(c.Request.Context(), c.Param("id"), taskID, middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		response[i] = toAttachmentResponse(&attachments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Add stores a multipart file as a task attachment
func (h *AttachmentHandler) Add(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	attachment, err := h.attachments.Add(c.Request.Context(), c.Param("id"), taskID, middleware.RequesterID(c),
		fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAttachmentResponse(attachment))
}

func (h *AttachmentHandler) Remove(c *gin.Context) {
	taskID, err := strconv.Atoi(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}
	attachmentID, err := strconv.Atoi(c.Param("attachmentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID format"})
		return
	}

	if err := h.attachments.Remove(c.Request.Context(), c.Param("id"), taskID, attachmentID, middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
