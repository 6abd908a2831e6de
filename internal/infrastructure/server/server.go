package server

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/joinboard/api/docs"
	httpHandlers "github.com/joinboard/api/internal/adapters/http"
	"github.com/joinboard/api/internal/adapters/repository"
	"github.com/joinboard/api/internal/application/services"
	"github.com/joinboard/api/internal/infrastructure/config"
	"github.com/joinboard/api/internal/infrastructure/database"
	"github.com/joinboard/api/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator. Field names in violation
// reports come from the json tag so error bodies name wire fields.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = NewValidator()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	tokenRepo := repository.NewTokenRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)
	contactRepo := repository.NewContactRepository(db.DB)
	subtaskRepo := repository.NewSubtaskRepository(db.DB)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg.Auth, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	taskService := services.NewTaskService(taskRepo, appLogger)
	contactService := services.NewContactService(contactRepo, appLogger)
	subtaskService := services.NewSubtaskService(subtaskRepo, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	userHandler := httpHandlers.NewUserHandler(userService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	contactHandler := httpHandlers.NewContactHandler(contactService, appLogger)
	subtaskHandler := httpHandlers.NewSubtaskHandler(subtaskService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	server.setupMiddleware()
	server.setupRoutes(authHandler, userHandler, taskHandler, contactHandler, subtaskHandler, authService)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, userHandler *httpHandlers.UserHandler, taskHandler *httpHandlers.TaskHandler, contactHandler *httpHandlers.ContactHandler, subtaskHandler *httpHandlers.SubtaskHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	auth := s.authMiddleware(authService)

	// Public routes
	s.echo.POST("/register", authHandler.Register)
	s.echo.POST("/login", authHandler.Login)
	s.echo.POST("/logout", authHandler.Logout, auth)
	s.echo.GET("/users", userHandler.ListUsers)
	s.echo.GET("/users/:id", userHandler.GetUser)

	// Task routes (authenticated)
	taskGroup := s.echo.Group("/tasks", auth)
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PUT("/:id", taskHandler.UpdateTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	// Contact routes (authenticated)
	contactGroup := s.echo.Group("/contacts", auth)
	contactGroup.GET("", contactHandler.ListContacts)
	contactGroup.POST("", contactHandler.CreateContact)
	contactGroup.GET("/:id", contactHandler.GetContact)
	contactGroup.PUT("/:id", contactHandler.UpdateContact)
	contactGroup.DELETE("/:id", contactHandler.DeleteContact)

	// Subtask routes (authenticated, endpoint-compatibility surface)
	subtaskGroup := s.echo.Group("/subtasks", auth)
	subtaskGroup.GET("", subtaskHandler.ListSubtasks)
	subtaskGroup.POST("", subtaskHandler.CreateSubtask)
	subtaskGroup.GET("/:id", subtaskHandler.GetSubtask)
	subtaskGroup.PUT("/:id", subtaskHandler.UpdateSubtask)
	subtaskGroup.DELETE("/:id", subtaskHandler.DeleteSubtask)
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"checks":  checks,
		"version": s.config.App.Version,
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}
