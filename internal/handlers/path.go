package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillpath/backend/internal/requestdata"
  "github.com/skillpath/backend/internal/services"
)

type PathHandler struct {
  pathService           services.PathService
  pathGenerationService services.PathGenerationService
}

func NewPathHandler(pathService services.PathService, pathGenerationService services.PathGenerationService) *PathHandler {
  return &PathHandler{
    pathService:           pathService,
    pathGenerationService: pathGenerationService,
  }
}

func (ph *PathHandler) Generate(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }

  var req struct {
    CareerGoal    string `json:"career_goal"`
    CurrentLevel  string `json:"current_level"`
    Interests     string `json:"interests"`
    WeeklyHours   int    `json:"weekly_hours"`
    TimelineWeeks int    `json:"timeline_weeks"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid request body"))
    return
  }
  if req.CareerGoal == "" || req.CurrentLevel == "" || req.Interests == "" {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("career_goal, current_level and interests are required"))
    return
  }
  if req.WeeklyHours <= 0 || req.TimelineWeeks <= 0 {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("weekly_hours and timeline_weeks must be positive"))
    return
  }

  constraints := services.PathConstraints{
    CareerGoal:    req.CareerGoal,
    CurrentLevel:  req.CurrentLevel,
    Interests:     req.Interests,
    WeeklyHours:   req.WeeklyHours,
    TimelineWeeks: req.TimelineWeeks,
  }
  path, usedFallback, err := ph.pathGenerationService.GeneratePath(c.Request.Context(), rd.UserID, constraints)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "generation_failed", err)
    return
  }

  resp := gin.H{"path": path, "fallback": usedFallback}
  if usedFallback {
    resp["message"] = "AI generation is temporarily unavailable. A starter path was created instead."
  }
  RespondOK(c, resp)
}

func (ph *PathHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  summaries, err := ph.pathService.ListPaths(c.Request.Context(), rd.UserID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
    return
  }
  RespondOK(c, gin.H{"paths": summaries})
}

func (ph *PathHandler) Detail(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  pathID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid path id"))
    return
  }
  detail, err := ph.pathService.GetPathDetail(c.Request.Context(), rd.UserID, pathID)
  if err != nil {
    RespondError(c, http.StatusInternalServerError, "internal_error", err)
    return
  }
  if detail == nil {
    RespondError(c, http.StatusNotFound, "not_found", fmt.Errorf("path not found"))
    return
  }
  RespondOK(c, detail)
}

func (ph *PathHandler) Delete(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
    return
  }
  pathID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", fmt.Errorf("invalid path id"))
    return
  }
  if err := ph.pathService.DeletePath(c.Request.Context(), rd.UserID, pathID); err != nil {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  RespondOK(c, gin.H{"success": true})
}
