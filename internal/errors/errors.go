package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFileNotFound is returned when a file record does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrCommentNotFound is returned when a comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotOwner is returned when the requester is neither the resource owner nor an admin.
	ErrNotOwner = errors.New("not authorized to modify this resource")
	// ErrFileTooLarge is returned when an upload exceeds the size cap.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrEmptyFile is returned when an upload carries no content.
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrInvalidRole is returned when a role update names an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrFileNotFound):
		return NewHTTPError(http.StatusNotFound, "File not found", "FILE_NOT_FOUND")
	case errors.Is(err, ErrCommentNotFound):
		return NewHTTPError(http.StatusNotFound, "Comment not found", "COMMENT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, "Not authorized to delete this resource", "NOT_OWNER")
	case errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusBadRequest, "File exceeds the 50 MB upload limit", "FILE_TOO_LARGE")
	case errors.Is(err, ErrEmptyFile):
		return NewHTTPError(http.StatusBadRequest, "Uploaded file is empty", "EMPTY_FILE")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, "Invalid role", "INVALID_ROLE")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, "Cannot delete your own account", "SELF_DELETE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error", "INTERNAL_ERROR")
	}
}
