package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/config"
	"github.com/hillcrest-academy/core/internal/middleware"
	jwtpkg "github.com/hillcrest-academy/core/internal/pkg/jwt"
	redispkg "github.com/hillcrest-academy/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the wired application.
type App struct {
	cfg    *config.Config
	db     *gorm.DB
	rdb    *redispkg.Client
	log    *zap.Logger
	engine *gin.Engine
	server *http.Server
}

// New wires middleware, routes, and static mounts.
func New(cfg *config.Config, db *gorm.DB, rdb *redispkg.Client, log *zap.Logger) (*App, error) {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	jwtpkg.SetSecret(cfg.JWTSecret)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.RateLimit(rdb))
	engine.Use(corsMiddleware(cfg.AllowedOrigins))

	a := &App{
		cfg:    cfg,
		db:     db,
		rdb:    rdb,
		log:    log,
		engine: engine,
	}
	if err := a.registerRoutes(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.Int("port", a.cfg.Port), zap.String("env", a.cfg.Env))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.log.Info("shutting down")
	return a.server.Shutdown(shutdownCtx)
}

// Engine exposes the router for tests.
func (a *App) Engine() *gin.Engine { return a.engine }

func corsMiddleware(allowed []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowed) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOriginFunc = func(origin string) bool {
			return matchOrigin(origin, allowed)
		}
	}
	return cors.New(cfg)
}
