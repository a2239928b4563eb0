package handler

import (
	"io"
	"net/http"

	"taskboard/internal/storage"

	"github.com/gin-gonic/gin"
)

// FileHandler serves stored attachment bytes back by stored name.
type FileHandler struct {
	store storage.BlobStore
}

func NewFileHandler(store storage.BlobStore) *FileHandler {
	return &FileHandler{store: store}
}

func (h *FileHandler) Serve(c *gin.Context) {
	name := c.Param("name")

	f, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, f); err != nil {
		// Response already started; nothing useful left to send.
		return
	}
}
