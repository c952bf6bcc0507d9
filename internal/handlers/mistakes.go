package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type MistakesHandler struct {
  log *logger.Logger
  svc services.MistakeService
}

func NewMistakesHandler(log *logger.Logger, svc services.MistakeService) *MistakesHandler {
  return &MistakesHandler{
    log: log.With("handler", "MistakesHandler"),
    svc: svc,
  }
}

type mistakeRequest struct {
  UserID             string `json:"userId" binding:"required"`
  UnitID             string `json:"unitId,omitempty"`
  ActivityExternalID string `json:"activityExternalId" binding:"required"`
  QuestionText       string `json:"questionText" binding:"required"`
  UserAnswer         string `json:"userAnswer"`
  CorrectAnswer      string `json:"correctAnswer" binding:"required"`
  MistakeType        string `json:"mistakeType,omitempty"`
  ClientMistakeID    string `json:"clientMistakeId,omitempty"`
}

// POST /mistakes
func (h *MistakesHandler) Record(c *gin.Context) {
  var req mistakeRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }

  if err := h.svc.Record(c.Request.Context(), services.MistakeInput{
    UserID:             userID,
    UnitRef:            req.UnitID,
    ActivityExternalID: req.ActivityExternalID,
    QuestionText:       req.QuestionText,
    UserAnswer:         req.UserAnswer,
    CorrectAnswer:      req.CorrectAnswer,
    MistakeType:        req.MistakeType,
    ClientMistakeID:    req.ClientMistakeID,
  }); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"recorded": true})
}

// GET /mistakes/:userId
func (h *MistakesHandler) List(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  rows, err := h.svc.ListForUser(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"mistakes": rows})
}
