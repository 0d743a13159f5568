package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type StudyLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, studyLog *types.StudyLog) error
	ListRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StudyLog, error)
	DeleteAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type studyLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudyLogRepo(db *gorm.DB, baseLog *logger.Logger) StudyLogRepo {
	return &studyLogRepo{db: db, log: baseLog.With("repo", "StudyLogRepo")}
}

func (lr *studyLogRepo) Create(ctx context.Context, tx *gorm.DB, studyLog *types.StudyLog) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Create(studyLog).Error
}

func (lr *studyLogRepo) ListRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StudyLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.StudyLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *studyLogRepo) DeleteAllByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.StudyLog{}).Error
}
