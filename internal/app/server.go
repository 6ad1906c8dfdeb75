// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"plusone_backend/internal/auth"
	"plusone_backend/internal/config"
	"plusone_backend/internal/connection"
	"plusone_backend/internal/jobs"
	"plusone_backend/internal/middleware"
	platformes "plusone_backend/internal/platform/elasticsearch"
	"plusone_backend/internal/post"
	"plusone_backend/internal/profile"
	"plusone_backend/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server wires the HTTP surface, middleware, and background jobs together.
// ESClient and AppLogger are exported for startup tasks that run outside the
// request path, like index bootstrap.
type Server struct {
	cfg          *config.Config
	engine       *gin.Engine
	httpServer   *http.Server
	reconcileJob *jobs.CounterReconcileJob

	AppLogger *zap.Logger
	ESClient  *platformes.ESClientWrapper
}

// NewServer builds the gin engine, runs schema migration, and mounts every
// route group under /api/v1.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	esClient *platformes.ESClientWrapper,
	tokenService *auth.TokenService,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	profileHandler *profile.Handler,
	connectionHandler *connection.Handler,
	postHandler *post.Handler,
	reconcileJob *jobs.CounterReconcileJob,
) (*Server, error) {
	if err := db.AutoMigrate(
		&user.User{},
		&connection.ConnectionRequest{},
		&connection.Connection{},
		&post.Post{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()

	engine.Use(middleware.ZapLogger(logger))
	engine.Use(gin.Recovery())
	engine.Use(middleware.ErrorHandler(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	authMW := middleware.AuthMiddleware(tokenService, logger)

	api := engine.Group("/api/v1")
	{
		authHandler.RegisterRoutes(api)
		userHandler.RegisterRoutes(api, authMW)
		profileHandler.RegisterRoutes(api, authMW)
		connectionHandler.RegisterRoutes(api, authMW)
		postHandler.RegisterRoutes(api, authMW)
	}

	return &Server{
		cfg:    cfg,
		engine: engine,
		httpServer: &http.Server{
			Addr:         cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:      engine,
			ReadTimeout:  cfg.ServerTimeout,
			WriteTimeout: cfg.ServerTimeout,
			IdleTimeout:  2 * cfg.ServerTimeout,
		},
		reconcileJob: reconcileJob,
		AppLogger:    logger,
		ESClient:     esClient,
	}, nil
}

// Start launches the background jobs and blocks serving HTTP until the
// listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.reconcileJob.Start(); err != nil {
		return fmt.Errorf("starting reconcile job: %w", err)
	}

	s.AppLogger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the background jobs and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.reconcileJob.Stop()
	return s.httpServer.Shutdown(ctx)
}
