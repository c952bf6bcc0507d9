package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/services"
)

type XPHandler struct {
  log *logger.Logger
  svc services.XPService
}

func NewXPHandler(log *logger.Logger, svc services.XPService) *XPHandler {
  return &XPHandler{
    log: log.With("handler", "XPHandler"),
    svc: svc,
  }
}

type awardRequest struct {
  UserID             string         `json:"userId" binding:"required"`
  Amount             int            `json:"amount" binding:"required"`
  SourceType         string         `json:"sourceType" binding:"required"`
  SourceID           string         `json:"sourceId" binding:"required"`
  Metadata           map[string]any `json:"metadata,omitempty"`
  SkipDuplicateCheck bool           `json:"skipDuplicateCheck,omitempty"`
}

// POST /xp/award
func (h *XPHandler) Award(c *gin.Context) {
  var req awardRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
    return
  }
  userID, err := uuid.Parse(req.UserID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }

  result, err := h.svc.Award(c.Request.Context(), nil, services.AwardInput{
    UserID:             userID,
    Amount:             req.Amount,
    SourceType:         req.SourceType,
    SourceID:           req.SourceID,
    Metadata:           req.Metadata,
    SkipDuplicateCheck: req.SkipDuplicateCheck,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}

// GET /xp/total/:userId
func (h *XPHandler) Total(c *gin.Context) {
  userID, err := uuid.Parse(c.Param("userId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid userId")
    return
  }
  total, err := h.svc.Total(c.Request.Context(), nil, userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"user_id": userID, "total_xp": total})
}
