package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type PlannedTaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.PlannedTask) error
	ListByUserIDAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*types.PlannedTask, error)
	// GetOwnedByID returns nil when no task with that id belongs to the user,
	// even if the id exists under another owner.
	GetOwnedByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.PlannedTask, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwnedByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (int64, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) error
}

type plannedTaskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlannedTaskRepo(db *gorm.DB, baseLog *logger.Logger) PlannedTaskRepo {
	return &plannedTaskRepo{db: db, log: baseLog.With("repo", "PlannedTaskRepo")}
}

func (tr *plannedTaskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.PlannedTask) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(task).Error
}

func (tr *plannedTaskRepo) ListByUserIDAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) ([]*types.PlannedTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.PlannedTask
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *plannedTaskRepo) GetOwnedByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (*types.PlannedTask, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var task types.PlannedTask
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (tr *plannedTaskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID, fields map[string]interface{}) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.PlannedTask{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (tr *plannedTaskRepo) DeleteOwnedByID(ctx context.Context, tx *gorm.DB, userID, taskID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&types.PlannedTask{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (tr *plannedTaskRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date string) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		query = query.Where("date = ?", date)
	}
	return query.Delete(&types.PlannedTask{}).Error
}
