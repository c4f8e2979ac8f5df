package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillpath/backend/internal/services"
)

type AnalyticsHandler struct {
  analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
  return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) Get(c *gin.Context) {
  report, err := ah.analyticsService.GetAnalytics(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
    return
  }
  RespondOK(c, report)
}
