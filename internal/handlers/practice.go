package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type PracticeHandler struct {
  log *logger.Logger
  svc services.ProgressService
}

func NewPracticeHandler(log *logger.Logger, svc services.ProgressService) *PracticeHandler {
  return &PracticeHandler{
    log: log.With("handler", "PracticeHandler"),
    svc: svc,
  }
}

type practiceEventRequest struct {
  UserID             string         `json:"userId" binding:"required"`
  ActivityExternalID string         `json:"activityExternalId" binding:"required"`
  Event              string         `json:"event" binding:"required"`
  IsCorrect          *bool          `json:"isCorrect,omitempty"`
  Score              *float64       `json:"score,omitempty"`
  ClientEventID      string         `json:"clientEventId,omitempty"`
  Data               map[string]any `json:"data,omitempty"`
}

// POST /practice/progress
func (h *PracticeHandler) RecordEvent(c *gin.Context) {
  var req practiceEventRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }

  result, err := h.svc.RecordActivityEvent(c.Request.Context(), services.ActivityEventInput{
    UserID:             userID,
    ActivityExternalID: req.ActivityExternalID,
    Kind:               req.Event,
    IsCorrect:          req.IsCorrect,
    Score:              req.Score,
    ClientEventID:      req.ClientEventID,
    Data:               req.Data,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}
