package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/services"
)

type ProgressHandler struct {
  progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) Update(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  stepID, err := uuid.Parse(c.Param("step_id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid step id"))
    return
  }
  var req struct {
    Status string `json:"status"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  completion, err := ph.progressService.UpdateStepProgress(c.Request.Context(), rd.UserID, stepID, req.Status)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "completion_percentage": completion})
}
