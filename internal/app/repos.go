package app

import (
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/repos"
)

type Repos struct {
	User        repos.UserRepo
	UserStats   repos.UserStatsRepo
	StudyLog    repos.StudyLogRepo
	PlannedTask repos.PlannedTaskRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        repos.NewUserRepo(db, log),
		UserStats:   repos.NewUserStatsRepo(db, log),
		StudyLog:    repos.NewStudyLogRepo(db, log),
		PlannedTask: repos.NewPlannedTaskRepo(db, log),
	}
}
