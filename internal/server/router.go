package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/skillpath/backend/internal/handlers"
  "github.com/skillpath/backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler      *handlers.AuthHandler
  AuthMiddleware   *middleware.AuthMiddleware
  UserHandler      *handlers.UserHandler
  PathHandler      *handlers.PathHandler
  ProgressHandler  *handlers.ProgressHandler
  FeedbackHandler  *handlers.FeedbackHandler
  ResourceHandler  *handlers.ResourceHandler
  AnalyticsHandler *handlers.AnalyticsHandler
  AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.AllowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

  // ===============
  // || Protected ||
  // ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Paths
  protected.POST("/paths/generate", cfg.PathHandler.Generate)
  protected.GET("/paths", cfg.PathHandler.List)
  protected.GET("/paths/:id", cfg.PathHandler.Detail)
  protected.DELETE("/paths/:id", cfg.PathHandler.Delete)
  // Progress
  protected.PATCH("/progress/:step_id", cfg.ProgressHandler.Update)
  // Feedback
  protected.POST("/feedback", cfg.FeedbackHandler.Submit)

  // ===============
  // || Admin     ||
  // ===============
  admin := router.Group("/admin")
  admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
  admin.GET("/resources", cfg.ResourceHandler.List)
  admin.POST("/resources", cfg.ResourceHandler.Create)
  admin.GET("/resources/:id", cfg.ResourceHandler.Get)
  admin.PUT("/resources/:id", cfg.ResourceHandler.Update)
  admin.DELETE("/resources/:id", cfg.ResourceHandler.Delete)
  admin.POST("/resources/bulk_delete", cfg.ResourceHandler.BulkDelete)
  admin.GET("/analytics", cfg.AnalyticsHandler.Get)

  return router
}
