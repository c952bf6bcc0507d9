package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type ProgressHandler struct {
  log *logger.Logger
  svc services.ProgressService
}

func NewProgressHandler(log *logger.Logger, svc services.ProgressService) *ProgressHandler {
  return &ProgressHandler{
    log: log.With("handler", "ProgressHandler"),
    svc: svc,
  }
}

type unitProgressRequest struct {
  UserID                string `json:"userId" binding:"required"`
  UnitID                string `json:"unitId" binding:"required"`
  CurrentActivityNumber int    `json:"currentActivityNumber"`
  TotalActivities       int    `json:"totalActivities" binding:"required"`
}

// POST /userprogress
func (h *ProgressHandler) UpsertUnitProgress(c *gin.Context) {
  var req unitProgressRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }

  progress, err := h.svc.UpsertUnitProgress(c.Request.Context(), userID, req.UnitID, req.CurrentActivityNumber, req.TotalActivities)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, progress)
}

// GET /userprogress/:userId/:unitId
func (h *ProgressHandler) GetUnitProgress(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  progress, err := h.svc.GetProgress(c.Request.Context(), userID, c.Param("unitId"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, progress)
}
