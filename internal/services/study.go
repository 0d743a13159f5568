package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/repos"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

// At most this many history rows come back from GetStats, newest first.
const historyLimit = 50

type StatsResult struct {
	TotalXP int               `json:"total_xp"`
	History []*types.StudyLog `json:"history"`
}

type StudyService interface {
	// LogSession appends a study log row and applies xp to the running total.
	// Negative xp is a penalty; the stored total never drops below zero.
	// Returns the total after the update.
	LogSession(ctx context.Context, userID uuid.UUID, topic string, duration, xp int) (int, error)
	GetStats(ctx context.Context, userID uuid.UUID) (*StatsResult, error)
	ResetHistory(ctx context.Context, userID uuid.UUID, resetXP bool) error
}

type studyService struct {
	db            *gorm.DB
	log           *logger.Logger
	studyLogRepo  repos.StudyLogRepo
	userStatsRepo repos.UserStatsRepo
}

func NewStudyService(
	db *gorm.DB,
	log *logger.Logger,
	studyLogRepo repos.StudyLogRepo,
	userStatsRepo repos.UserStatsRepo,
) StudyService {
	return &studyService{
		db:            db,
		log:           log.With("service", "StudyService"),
		studyLogRepo:  studyLogRepo,
		userStatsRepo: userStatsRepo,
	}
}

func (ss *studyService) LogSession(ctx context.Context, userID uuid.UUID, topic string, duration, xp int) (int, error) {
	var total int
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		studyLog := &types.StudyLog{
			ID:              uuid.New(),
			UserID:          userID,
			Topic:           topic,
			DurationMinutes: duration,
			XPEarned:        xp,
			Timestamp:       time.Now().UTC(),
		}
		if err := ss.studyLogRepo.Create(ctx, tx, studyLog); err != nil {
			return fmt.Errorf("failed to create study log: %w", err)
		}

		if err := ss.ensureStats(ctx, tx, userID); err != nil {
			return err
		}

		newTotal, err := ss.userStatsRepo.AddXP(ctx, tx, userID, xp)
		if err != nil {
			return fmt.Errorf("failed to update xp total: %w", err)
		}
		total = newTotal
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ensureStats lazily creates the stats row for accounts that predate
// registration-time stats creation.
func (ss *studyService) ensureStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	stats, err := ss.userStatsRepo.GetByUserID(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user stats: %w", err)
	}
	if stats != nil {
		return nil
	}
	stats = &types.UserStats{
		ID:      uuid.New(),
		UserID:  userID,
		TotalXP: 0,
	}
	if err := ss.userStatsRepo.Create(ctx, tx, stats); err != nil {
		return fmt.Errorf("failed to create user stats: %w", err)
	}
	return nil
}

func (ss *studyService) GetStats(ctx context.Context, userID uuid.UUID) (*StatsResult, error) {
	stats, err := ss.userStatsRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	totalXP := 0
	if stats != nil {
		totalXP = stats.TotalXP
	}

	history, err := ss.studyLogRepo.ListRecentByUserID(ctx, nil, userID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load study history: %w", err)
	}
	if history == nil {
		history = []*types.StudyLog{}
	}

	return &StatsResult{TotalXP: totalXP, History: history}, nil
}

func (ss *studyService) ResetHistory(ctx context.Context, userID uuid.UUID, resetXP bool) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.studyLogRepo.DeleteAllByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("failed to delete study logs: %w", err)
		}
		if resetXP {
			if err := ss.userStatsRepo.ZeroXP(ctx, tx, userID); err != nil {
				return fmt.Errorf("failed to zero xp total: %w", err)
			}
		}
		return nil
	})
}
