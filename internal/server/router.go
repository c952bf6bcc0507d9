package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/yungbote/linguabridge-backend/internal/handlers"
  "github.com/yungbote/linguabridge-backend/internal/middleware"
)

type RouterConfig struct {
  ServiceName       string
  AllowOrigins      []string
  RequestLog        *middleware.RequestLogMiddleware
  XPHandler         *handlers.XPHandler
  ProgressHandler   *handlers.ProgressHandler
  PracticeHandler   *handlers.PracticeHandler
  UnitsHandler      *handlers.UnitsHandler
  MistakesHandler   *handlers.MistakesHandler
  TrackerHandler    *handlers.TrackerHandler
  ActivitiesHandler *handlers.ActivitiesHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.New()
  router.Use(gin.Recovery())
  router.Use(otelgin.Middleware(cfg.ServiceName))
  if cfg.RequestLog != nil {
    router.Use(cfg.RequestLog.Handler())
  }

  origins := cfg.AllowOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000", "http://localhost:5174", "http://localhost:8081"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  // XP ledger
  router.POST("/xp/award", cfg.XPHandler.Award)
  router.GET("/xp/total/:userId", cfg.XPHandler.Total)

  // Streak / XP summary
  router.GET("/progress-tracker/:userId", cfg.TrackerHandler.Summary)
  router.GET("/streak/:userId", cfg.TrackerHandler.Streak)

  // Progress
  router.POST("/userprogress", cfg.ProgressHandler.UpsertUnitProgress)
  router.GET("/userprogress/:userId/:unitId", cfg.ProgressHandler.GetUnitProgress)
  router.POST("/practice/progress", cfg.PracticeHandler.RecordEvent)

  // Units
  router.GET("/units", cfg.UnitsHandler.List)
  router.GET("/units/resume/:userId", cfg.UnitsHandler.Resume)
  router.POST("/units/:unitId/access", cfg.UnitsHandler.TouchAccess)

  // Content
  router.GET("/activities/:externalId", cfg.ActivitiesHandler.Resolve)

  // Mistakes
  router.POST("/mistakes", cfg.MistakesHandler.Record)
  router.GET("/mistakes/:userId", cfg.MistakesHandler.List)

  return router
}
