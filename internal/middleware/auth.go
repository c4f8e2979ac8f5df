package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillpath/backend/internal/logger"
  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
      return
    }
    c.Request = c.Request.WithContext(ctx)
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
      return
    }
    c.Next()
  }
}

// RequireAdmin assumes RequireAuth already ran on the group.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil || !rd.IsAdmin {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
      return
    }
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
