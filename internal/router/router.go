package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fileshare/internal/auth"
	"fileshare/internal/config"
	apperrors "fileshare/internal/errors"
	"fileshare/internal/handler"
	"fileshare/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	fileHandler *handler.FileHandler,
	commentHandler *handler.CommentHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// uploaded binaries are served statically from the upload directory
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/files", fileHandler.List)
	api.GET("/files/:id", fileHandler.Get)
	api.GET("/files/:id/comments", commentHandler.ListByFile)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: jwtErrorHandler,
	}))

	secured.POST("/upload", fileHandler.Upload)
	secured.DELETE("/files/:id", fileHandler.Delete)
	secured.POST("/files/:id/comments", commentHandler.Create)
	secured.DELETE("/comments/:id", commentHandler.Delete)

	// Admin routes
	admin := secured.Group("/admin", requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/stats", adminHandler.Stats)
}

// jwtErrorHandler keeps the two rejection kinds distinguishable: a request
// with no token at all gets 401, a present but invalid or expired token gets 403.
func jwtErrorHandler(c echo.Context, err error) error {
	if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "Access token required",
			Code:  "TOKEN_REQUIRED",
		})
	}
	return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
		Error: "Invalid or expired token",
		Code:  "TOKEN_INVALID",
	})
}

// requireAdmin gates a route group on the admin role.
func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(auth.ContextKey).(*auth.Claims)
		if !ok || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "Admin access required",
				Code:  "ADMIN_REQUIRED",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
