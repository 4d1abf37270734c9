package app

import (
	"gorm.io/gorm"

	"github.com/aquademy/coachcore-backend/internal/platform/logger"
	"github.com/aquademy/coachcore-backend/internal/repos"
)

type Repos struct {
	ScoreRecord repos.ScoreRecordRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		ScoreRecord: repos.NewScoreRecordRepo(db, log),
	}
}
