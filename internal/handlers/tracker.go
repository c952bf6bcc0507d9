package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type TrackerHandler struct {
  log     *logger.Logger
  tracker services.TrackerService
  streaks services.StreakService
}

func NewTrackerHandler(log *logger.Logger, tracker services.TrackerService, streaks services.StreakService) *TrackerHandler {
  return &TrackerHandler{
    log:     log.With("handler", "TrackerHandler"),
    tracker: tracker,
    streaks: streaks,
  }
}

// tzOffsetMinutes reads the client's UTC offset from ?tz= (minutes east of
// UTC, e.g. -300 for New York in winter). Missing or malformed values fall
// back to UTC rather than erroring: a wrong streak boundary beats a broken
// home screen.
func tzOffsetMinutes(c *gin.Context) int {
  raw := c.Query("tz")
  if raw == "" {
    return 0
  }
  v, err := strconv.Atoi(raw)
  if err != nil {
    return 0
  }
  return v
}

// GET /progress-tracker/:userId
func (h *TrackerHandler) Summary(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  summary, err := h.tracker.Summary(c.Request.Context(), userID, tzOffsetMinutes(c))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, summary)
}

// GET /streak/:userId
func (h *TrackerHandler) Streak(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  state, err := h.streaks.Streak(c.Request.Context(), nil, userID, tzOffsetMinutes(c))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, state)
}
