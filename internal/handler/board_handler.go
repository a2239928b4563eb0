package handler

import (
	"net/http"

	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Name string `json:"name"`
}

type UpdateBoardVisibilityRequest struct {
	Visibility *string `json:"visibility"`
}

type BoardOwnerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BoardResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Visibility string             `json:"visibility"`
	Owner      BoardOwnerResponse `json:"owner"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}

func toBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:         board.ID,
		Name:       board.Name,
		Visibility: board.Visibility,
		Owner: BoardOwnerResponse{
			ID:   board.OwnerID.String(),
			Name: board.Owner.Name,
		},
		CreatedAt: board.CreatedAt.Format(http.TimeFormat),
		UpdatedAt: board.UpdatedAt.Format(http.TimeFormat),
	}
}

// Create creates a new board owned by the authenticated user
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	// A malformed body reads as an empty name; the service checks
	// authentication before validating the name.
	_ = c.ShouldBindJSON(&req)

	board, err := h.boards.Create(c.Request.Context(), middleware.RequesterID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// List returns every board visible to the requester
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context(), middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}
	c.JSON(http.StatusOK, response)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	board, err := h.boards.Get(c.Request.Context(), c.Param("id"), middleware.RequesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

// UpdateVisibility flips a board between public and private
func (h *BoardHandler) UpdateVisibility(c *gin.Context) {
	var req UpdateBoardVisibilityRequest
	// A malformed body is treated like a missing visibility value so the
	// authorization check still runs first inside the service.
	_ = c.ShouldBindJSON(&req)

	board, err := h.boards.UpdateVisibility(c.Request.Context(), c.Param("id"), middleware.RequesterID(c), req.Visibility)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(board))
}

func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.boards.Delete(c.Request.Context(), c.Param("id"), middleware.RequesterID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
