package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/services"
)

type FeedbackHandler struct {
  feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
  return &FeedbackHandler{feedbackService: feedbackService}
}

func (fh *FeedbackHandler) Submit(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  var req struct {
    SkillPathID *uuid.UUID `json:"skill_path_id"`
    Rating      int        `json:"rating"`
    Comment     string     `json:"comment"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  row, err := fh.feedbackService.SubmitFeedback(c.Request.Context(), rd.UserID, req.SkillPathID, req.Rating, req.Comment)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  RespondOK(c, gin.H{"success": true, "feedback": row})
}
