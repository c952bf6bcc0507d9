package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/linguabridge-backend/internal/content"
  "github.com/yungbote/linguabridge-backend/internal/logger"
  "github.com/yungbote/linguabridge-backend/internal/repos"
)

type ActivitiesHandler struct {
  log      *logger.Logger
  resolver *content.Resolver
  repo     repos.ActivityRepo
}

func NewActivitiesHandler(log *logger.Logger, resolver *content.Resolver, repo repos.ActivityRepo) *ActivitiesHandler {
  return &ActivitiesHandler{
    log:      log.With("handler", "ActivitiesHandler"),
    resolver: resolver,
    repo:     repo,
  }
}

// GET /activities/:externalId
// Resolves the static catalog entry (by external id or content reference) and
// merges in the runtime activity row when one exists.
func (h *ActivitiesHandler) Resolve(c *gin.Context) {
  externalID := c.Param("externalId")

  runtime, err := h.repo.GetByExternalID(c.Request.Context(), nil, externalID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }

  resolved, ok := h.resolver.Resolve(externalID, runtime)
  if !ok {
    RespondError(c, http.StatusNotFound, "activity content not found")
    return
  }
  RespondOK(c, resolved)
}
