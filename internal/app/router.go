package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/middleware"
	"github.com/yungbote/linguabridge-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return server.NewRouter(server.RouterConfig{
		ServiceName:       cfg.ServiceName,
		AllowOrigins:      cfg.AllowOrigins,
		RequestLog:        middleware.NewRequestLogMiddleware(log),
		XPHandler:         handlerset.XP,
		ProgressHandler:   handlerset.Progress,
		PracticeHandler:   handlerset.Practice,
		UnitsHandler:      handlerset.Units,
		MistakesHandler:   handlerset.Mistakes,
		TrackerHandler:    handlerset.Tracker,
		ActivitiesHandler: handlerset.Activities,
	})
}
