package app

import (
	"gorm.io/gorm"
	"github.com/yungbote/linguabridge-backend/internal/logger"
	"github.com/yungbote/linguabridge-backend/internal/repos"
)

type Repos struct {
	Unit               repos.UnitRepo
	Activity           repos.ActivityRepo
	UnitProgress       repos.UnitProgressRepo
	ActivityCompletion repos.ActivityCompletionRepo
	XPTransaction      repos.XPTransactionRepo
	PracticeEvent      repos.PracticeEventRepo
	Mistake            repos.MistakeRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Unit:               repos.NewUnitRepo(db, log),
		Activity:           repos.NewActivityRepo(db, log),
		UnitProgress:       repos.NewUnitProgressRepo(db, log),
		ActivityCompletion: repos.NewActivityCompletionRepo(db, log),
		XPTransaction:      repos.NewXPTransactionRepo(db, log),
		PracticeEvent:      repos.NewPracticeEventRepo(db, log),
		Mistake:            repos.NewMistakeRepo(db, log),
	}
}
