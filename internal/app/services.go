package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	Study      services.StudyService
	Calendar   services.CalendarService
	Generation services.GenerationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, gemini services.GeminiClient) (Services, error) {
	log.Info("Wiring services...")

	if gemini == nil {
		var err error
		gemini, err = services.NewGeminiClient(log)
		if err != nil {
			return Services{}, fmt.Errorf("init gemini client: %w", err)
		}
	}

	return Services{
		Auth:       services.NewAuthService(db, log, reposet.User, reposet.UserStats, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Study:      services.NewStudyService(db, log, reposet.StudyLog, reposet.UserStats),
		Calendar:   services.NewCalendarService(db, log, reposet.PlannedTask),
		Generation: services.NewGenerationService(log, gemini),
	}, nil
}
