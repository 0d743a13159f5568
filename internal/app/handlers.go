package app

import (
	"github.com/cerebra-app/cerebra-backend/internal/handlers"
	"github.com/cerebra-app/cerebra-backend/internal/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Study      *handlers.StudyHandler
	Calendar   *handlers.CalendarHandler
	Generation *handlers.GenerationHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		Study:      handlers.NewStudyHandler(log, serviceset.Study),
		Calendar:   handlers.NewCalendarHandler(log, serviceset.Calendar),
		Generation: handlers.NewGenerationHandler(log, serviceset.Generation),
	}
}
