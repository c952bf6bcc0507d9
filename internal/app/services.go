package app

import (
	"gorm.io/gorm"

	redisclient "github.com/yungbote/linguabridge-backend/internal/clients/redis"
	"github.com/yungbote/linguabridge-backend/internal/content"
	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/services"
)

type Services struct {
	XP          services.XPService
	Progress    services.ProgressService
	Streak      services.StreakService
	Resume      services.ResumeService
	Mistake     services.MistakeService
	Tracker     services.TrackerService
	Unit        services.UnitService
	ContentSync services.ContentSyncService
}

func wireServices(db *gorm.DB, log *logger.Logger, catalog *content.Catalog, reposet Repos) (Services, *redisclient.SummaryCache) {
	log.Info("Wiring services...")

	// The summary cache is optional: without REDIS_ADDR the tracker just
	// recomputes on every read.
	var cache services.SummaryCache
	summaryCache, err := redisclient.NewSummaryCache(log)
	if err != nil {
		log.Warn("Summary cache disabled", "error", err)
	} else {
		cache = summaryCache
	}

	streak := services.NewStreakService(db, log, reposet.XPTransaction)
	return Services{
		XP:          services.NewXPService(db, log, reposet.XPTransaction, cache),
		Progress:    services.NewProgressService(db, log, reposet.Unit, reposet.Activity, reposet.UnitProgress, reposet.ActivityCompletion, reposet.PracticeEvent, cache),
		Streak:      streak,
		Resume:      services.NewResumeService(db, log, reposet.Unit, reposet.Activity, reposet.ActivityCompletion),
		Mistake:     services.NewMistakeService(db, log, reposet.Mistake, reposet.Unit, reposet.Activity),
		Tracker:     services.NewTrackerService(db, log, reposet.XPTransaction, streak, reposet.ActivityCompletion, reposet.UnitProgress, cache),
		Unit:        services.NewUnitService(db, log, reposet.Unit, reposet.UnitProgress),
		ContentSync: services.NewContentSyncService(db, log, catalog, reposet.Unit, reposet.Activity),
	}, summaryCache
}
