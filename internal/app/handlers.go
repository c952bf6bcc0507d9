package app

import (
	"github.com/yungbote/linguabridge-backend/internal/content"
	"github.com/yungbote/linguabridge-backend/internal/handlers"
	"github.com/yungbote/linguabridge-backend/internal/logger"
)

type Handlers struct {
	XP         *handlers.XPHandler
	Progress   *handlers.ProgressHandler
	Practice   *handlers.PracticeHandler
	Units      *handlers.UnitsHandler
	Mistakes   *handlers.MistakesHandler
	Tracker    *handlers.TrackerHandler
	Activities *handlers.ActivitiesHandler
}

func wireHandlers(log *logger.Logger, resolver *content.Resolver, reposet Repos, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		XP:         handlers.NewXPHandler(log, serviceset.XP),
		Progress:   handlers.NewProgressHandler(log, serviceset.Progress),
		Practice:   handlers.NewPracticeHandler(log, serviceset.Progress),
		Units:      handlers.NewUnitsHandler(log, serviceset.Unit, serviceset.Resume, serviceset.Progress),
		Mistakes:   handlers.NewMistakesHandler(log, serviceset.Mistake),
		Tracker:    handlers.NewTrackerHandler(log, serviceset.Tracker, serviceset.Streak),
		Activities: handlers.NewActivitiesHandler(log, resolver, reposet.Activity),
	}
}
