package main

import (
  "context"
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/skillpath/backend/internal/db"
  "github.com/skillpath/backend/internal/handlers"
  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/middleware"
  "github.com/skillpath/backend/internal/repos"
  "github.com/skillpath/backend/internal/server"
  "github.com/skillpath/backend/internal/services"
  "github.com/skillpath/backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  serverPort := utils.GetEnv("PORT", "8080", log)
  allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log), ",")

  // Database
  dbService, err := db.NewService(log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := dbService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  skillPathRepo := repos.NewSkillPathRepo(thePG, log)
  pathStepRepo := repos.NewPathStepRepo(thePG, log)
  progressRepo := repos.NewProgressRepo(thePG, log)
  resourceRepo := repos.NewResourceRepo(thePG, log)
  stepResourceRepo := repos.NewStepResourceRepo(thePG, log)
  feedbackRepo := repos.NewFeedbackRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  openaiClient := services.NewOpenAIClient(log)
  planClient := services.NewPlanClient(log, openaiClient)
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  pathGenerationService := services.NewPathGenerationService(thePG, log, planClient, skillPathRepo, pathStepRepo, progressRepo, resourceRepo, stepResourceRepo)
  pathService := services.NewPathService(thePG, log, skillPathRepo, pathStepRepo, progressRepo, resourceRepo, stepResourceRepo)
  progressService := services.NewProgressService(thePG, log, pathStepRepo, progressRepo)
  resourceService := services.NewResourceService(thePG, log, resourceRepo, stepResourceRepo)
  feedbackService := services.NewFeedbackService(thePG, log, feedbackRepo, skillPathRepo)
  analyticsService := services.NewAnalyticsService(thePG, log, feedbackRepo)

  // Admin seed
  adminEmail := utils.GetEnv("ADMIN_EMAIL", "", log)
  adminPassword := utils.GetEnv("ADMIN_PASSWORD", "", log)
  if adminEmail != "" && adminPassword != "" {
    adminUsername := utils.GetEnv("ADMIN_USERNAME", "admin", log)
    if err := authService.EnsureAdminUser(context.Background(), adminUsername, adminEmail, adminPassword); err != nil {
      log.Warn("Admin seed failed", "error", err)
    }
  }

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  pathHandler := handlers.NewPathHandler(pathService, pathGenerationService)
  progressHandler := handlers.NewProgressHandler(progressService)
  feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
  resourceHandler := handlers.NewResourceHandler(resourceService)
  analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    UserHandler:      userHandler,
    PathHandler:      pathHandler,
    ProgressHandler:  progressHandler,
    FeedbackHandler:  feedbackHandler,
    ResourceHandler:  resourceHandler,
    AnalyticsHandler: analyticsHandler,
    AllowOrigins:     allowOrigins,
  })

  log.Info("Starting server", "port", serverPort)
  if err := router.Run(":" + serverPort); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
