package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fileshare/internal/auth"
	apperrors "fileshare/internal/errors"
)

// MessageResponse is the body of delete/update confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// currentUser returns the claims stored by the JWT middleware, or nil on
// routes the middleware did not cover.
func currentUser(c echo.Context) *auth.Claims {
	claims, _ := c.Get(auth.ContextKey).(*auth.Claims)
	return claims
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "Invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// toHTTPError maps a service error onto the wire taxonomy.
func toHTTPError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
