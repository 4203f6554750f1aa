package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "fileshare/internal/errors"
	"fileshare/internal/model"
	"fileshare/internal/service"
)

// FileHandler handles file upload, listing and deletion endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// FileResponse is a file record as returned over the wire, with the uploader's
// display name joined in and the public download path.
type FileResponse struct {
	ID           uint      `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalname"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	Path         string    `json:"path"`
	UploadedBy   *uint     `json:"uploaded_by"`
	UploaderName string    `json:"uploader_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toFileResponse(f *model.File) FileResponse {
	resp := FileResponse{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Path:         "/uploads/" + f.Filename,
		UploadedBy:   f.UploadedBy,
		CreatedAt:    f.CreatedAt,
	}
	if f.Uploader != nil {
		resp.UploaderName = f.Uploader.Username
	}
	return resp
}

// Upload godoc
// @Summary Upload a file
// @Tags files
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload (max 50 MB)"
// @Success 200 {object} FileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *FileHandler) Upload(c echo.Context) error {
	claims := currentUser(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "No file uploaded",
			Code:  "NO_FILE",
		})
	}

	src, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "No file uploaded",
			Code:  "NO_FILE",
		})
	}
	defer src.Close()

	file, err := h.fileService.Upload(c.Request().Context(), service.Upload{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      src,
	}, claims.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, toFileResponse(file))
}

// List godoc
// @Summary List all files, newest first
// @Tags files
// @Produce json
// @Success 200 {array} FileResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) List(c echo.Context) error {
	files, err := h.fileService.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]FileResponse, 0, len(files))
	for i := range files {
		resp = append(resp, toFileResponse(&files[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a single file record
// @Tags files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} FileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [get]
func (h *FileHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	file, err := h.fileService.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, toFileResponse(file))
}

// Delete godoc
// @Summary Delete a file and its binary (owner or admin)
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.fileService.Delete(c.Request().Context(), id, currentUser(c)); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "File deleted successfully"})
}
