package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type UnitsHandler struct {
  log      *logger.Logger
  units    services.UnitService
  resume   services.ResumeService
  progress services.ProgressService
}

func NewUnitsHandler(log *logger.Logger, units services.UnitService, resume services.ResumeService, progress services.ProgressService) *UnitsHandler {
  return &UnitsHandler{
    log:      log.With("handler", "UnitsHandler"),
    units:    units,
    resume:   resume,
    progress: progress,
  }
}

// GET /units?userId=
func (h *UnitsHandler) List(c *gin.Context) {
  userID, err := uuid.Parse(c.Query("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  summaries, err := h.units.ListWithProgress(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"units": summaries})
}

// GET /units/resume/:userId
func (h *UnitsHandler) Resume(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  target, err := h.resume.ResumeTarget(c.Request.Context(), nil, userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  // target is null only when no units exist at all.
  RespondOK(c, target)
}

type touchAccessRequest struct {
  UserID string `json:"userId" binding:"required"`
}

// POST /units/:unitId/access
func (h *UnitsHandler) TouchAccess(c *gin.Context) {
  var req touchAccessRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  if err := h.progress.TouchAccess(c.Request.Context(), userID, c.Param("unitId")); err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"touched": true})
}
