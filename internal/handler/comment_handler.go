package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
	"fileshare/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CreateCommentRequest represents a new comment.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// CommentResponse is a comment as returned over the wire, with the author's
// display name joined in. Username is empty when the author was deleted.
type CommentResponse struct {
	ID        uint      `json:"id"`
	FileID    uint      `json:"file_id"`
	UserID    *uint     `json:"user_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toCommentResponse(cm *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        cm.ID,
		FileID:    cm.FileID,
		UserID:    cm.UserID,
		Content:   cm.Content,
		CreatedAt: cm.CreatedAt,
	}
	if cm.Author != nil {
		resp.Username = cm.Author.Username
	}
	return resp
}

// Create godoc
// @Summary Comment on a file
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Param request body CreateCommentRequest true "Comment content"
// @Success 200 {object} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id}/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	fileID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "Comment content is required",
			Code:  "MISSING_CONTENT",
		})
	}

	comment, err := h.commentService.Create(c.Request().Context(), fileID, claims.UserID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toCommentResponse(comment))
}

// ListByFile godoc
// @Summary List comments on a file, newest first
// @Tags comments
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {array} CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/{id}/comments [get]
func (h *CommentHandler) ListByFile(c echo.Context) error {
	fileID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentService.ListByFile(c.Request().Context(), fileID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, toCommentResponse(&comments[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a comment (author or admin)
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), id, currentUser(c)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Comment deleted successfully"})
}
