// Package httpapi exposes the task-management operations over REST. Every
// response is wrapped in the {success, data?, message?} envelope that the
// client consumes regardless of which backend served it.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mpetrov/taskkeeper/internal/api"
	"github.com/mpetrov/taskkeeper/internal/common"
	"github.com/mpetrov/taskkeeper/internal/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService is the auth surface the handlers need.
type UserService interface {
	Signup(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Get(ctx context.Context, userID string) (*api.User, error)
	UpdateProfile(ctx context.Context, userID string, patch api.UpdateProfileRequest) (*api.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// TaskService is the task surface the handlers need.
type TaskService interface {
	List(ctx context.Context, userID string, filter api.Filter) ([]api.Task, error)
	Create(ctx context.Context, userID string, req api.CreateTaskRequest) (*api.Task, error)
	Get(ctx context.Context, userID, id string) (*api.Task, error)
	Update(ctx context.Context, userID, id string, patch api.UpdateTaskRequest) (*api.Task, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (api.Stats, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	tasks     TaskService
	jwtSecret []byte
	router    *gin.Engine
}

func NewServer(address string, l logging.Logger, us UserService, ts TaskService, secretKey string) *Server {
	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))

	r.GET(common.HealthCheckPath, func(c *gin.Context) {
		respondData(c, http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", s.handleSignup)
		authGroup.POST("/login", s.handleLogin)

		protected := authGroup.Group("")
		protected.Use(authMiddleware(s.jwtSecret))
		protected.GET("/me", s.handleMe)
		protected.PUT("/profile", s.handleUpdateProfile)
		protected.PUT("/password", s.handleChangePassword)
		protected.DELETE("/account", s.handleDeleteAccount)
	}

	taskGroup := r.Group("/api/tasks")
	taskGroup.Use(authMiddleware(s.jwtSecret))
	{
		taskGroup.GET("", s.handleListTasks)
		taskGroup.POST("", s.handleCreateTask)
		taskGroup.GET("/stats", s.handleTaskStats)
		taskGroup.GET("/:id", s.handleGetTask)
		taskGroup.PUT("/:id", s.handleUpdateTask)
		taskGroup.DELETE("/:id", s.handleDeleteTask)
	}

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
