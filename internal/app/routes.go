package app

import (
	"github.com/gin-gonic/gin"
	"github.com/hillcrest-academy/core/internal/middleware"
	"github.com/hillcrest-academy/core/internal/modules/admin"
	"github.com/hillcrest-academy/core/internal/modules/admissions/applicant"
	"github.com/hillcrest-academy/core/internal/modules/auth"
	"github.com/hillcrest-academy/core/internal/modules/content/event"
	"github.com/hillcrest-academy/core/internal/modules/content/gallery"
	"github.com/hillcrest-academy/core/internal/modules/content/news"
	"github.com/hillcrest-academy/core/internal/modules/resultchecker"
	"github.com/hillcrest-academy/core/internal/modules/storage/image"
	"github.com/hillcrest-academy/core/internal/pkg/examsgate"
	"github.com/hillcrest-academy/core/internal/pkg/response"
)

func (a *App) registerRoutes() error {
	uploadsDir, err := a.cfg.UploadsDir()
	if err != nil {
		return err
	}

	authMW := middleware.Auth(a.db)
	optionalAuthMW := middleware.OptionalAuth(a.db)
	api := a.engine.Group("/api")

	authHandler := auth.NewHandler(auth.NewService(a.db))
	authHandler.RegisterRoutes(api.Group("/auth"), authMW)

	adminHandler := admin.NewHandler(admin.NewService(a.db))
	adminHandler.RegisterRoutes(api.Group("/admin"), authMW)

	newsHandler := news.NewHandler(news.NewService(a.db))
	newsHandler.RegisterRoutes(api.Group("/news"), authMW, optionalAuthMW)

	eventHandler := event.NewHandler(event.NewService(a.db))
	eventHandler.RegisterRoutes(api.Group("/events"), authMW)

	galleryHandler := gallery.NewHandler(gallery.NewService(a.db))
	galleryHandler.RegisterRoutes(api.Group("/gallery"), authMW, optionalAuthMW)

	imageHandler := image.NewHandler(image.NewService(a.db, uploadsDir), uploadsDir)
	imageHandler.RegisterRoutes(api.Group("/images"), authMW)

	applicantHandler := applicant.NewHandler(applicant.NewService(a.db))
	applicantHandler.RegisterRoutes(api.Group("/applicants"), authMW)

	gate := examsgate.New(a.cfg.ResultChecker.BaseURL, a.cfg.ResultChecker.APIKey)
	rcHandler := resultchecker.NewHandler(gate)
	rcHandler.RegisterRoutes(api.Group("/result-checker"))

	a.engine.Static("/uploads", uploadsDir)

	a.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	a.engine.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	a.engine.HandleMethodNotAllowed = true
	a.engine.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	return nil
}
