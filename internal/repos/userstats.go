package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type UserStatsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, stats *types.UserStats) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error)
	// AddXP adds delta to the user's running total, clamping the result at
	// zero, and returns the stored total. The stats row must exist.
	AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (int, error)
	ZeroXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type userStatsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserStatsRepo(db *gorm.DB, baseLog *logger.Logger) UserStatsRepo {
	return &userStatsRepo{db: db, log: baseLog.With("repo", "UserStatsRepo")}
}

func (sr *userStatsRepo) Create(ctx context.Context, tx *gorm.DB, stats *types.UserStats) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(stats).Error
}

func (sr *userStatsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserStats, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var stats types.UserStats
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}

func (sr *userStatsRepo) AddXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta int) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var stats types.UserStats
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stats).Error; err != nil {
		return 0, err
	}

	stats.TotalXP += delta
	if stats.TotalXP < 0 {
		stats.TotalXP = 0
	}

	if err := transaction.WithContext(ctx).
		Model(&types.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_xp", stats.TotalXP).Error; err != nil {
		return 0, err
	}
	return stats.TotalXP, nil
}

func (sr *userStatsRepo) ZeroXP(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.UserStats{}).
		Where("user_id = ?", userID).
		Update("total_xp", 0).Error
}
