package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/repos"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

type TaskInput struct {
	Date               string   `json:"date" binding:"required"`
	Time               string   `json:"time"`
	Task               string   `json:"task" binding:"required"`
	Type               string   `json:"type"`
	Reason             string   `json:"reason"`
	KeyConcepts        []string `json:"key_concepts"`
	SuggestedResources []string `json:"suggested_resources"`
}

// TaskView is the client-facing shape with the serialized lists restored.
type TaskView struct {
	ID                 uuid.UUID `json:"id"`
	Date               string    `json:"date"`
	Time               string    `json:"time"`
	Task               string    `json:"task"`
	Type               string    `json:"type"`
	Reason             string    `json:"reason"`
	KeyConcepts        []string  `json:"key_concepts"`
	SuggestedResources []string  `json:"suggested_resources"`
	Completed          bool      `json:"completed"`
}

type CalendarService interface {
	AddTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*TaskView, error)
	GetTasks(ctx context.Context, userID uuid.UUID, date string) ([]*TaskView, error)
	UpdateTask(ctx context.Context, userID, taskID uuid.UUID, task, taskTime string) error
	ToggleTask(ctx context.Context, userID, taskID uuid.UUID, completed bool) error
	DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error
	// ResetTasks deletes the user's tasks for a date, or all of them when
	// date is empty.
	ResetTasks(ctx context.Context, userID uuid.UUID, date string) error
}

type calendarService struct {
	db       *gorm.DB
	log      *logger.Logger
	taskRepo repos.PlannedTaskRepo
}

func NewCalendarService(db *gorm.DB, log *logger.Logger, taskRepo repos.PlannedTaskRepo) CalendarService {
	return &calendarService{
		db:       db,
		log:      log.With("service", "CalendarService"),
		taskRepo: taskRepo,
	}
}

func (cs *calendarService) AddTask(ctx context.Context, userID uuid.UUID, input TaskInput) (*TaskView, error) {
	concepts, err := marshalList(input.KeyConcepts)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key concepts: %w", err)
	}
	resources, err := marshalList(input.SuggestedResources)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize suggested resources: %w", err)
	}

	task := &types.PlannedTask{
		ID:                 uuid.New(),
		UserID:             userID,
		Date:               input.Date,
		Time:               input.Time,
		Task:               input.Task,
		Type:               input.Type,
		Reason:             input.Reason,
		KeyConcepts:        concepts,
		SuggestedResources: resources,
	}
	if err := cs.taskRepo.Create(ctx, nil, task); err != nil {
		return nil, fmt.Errorf("failed to create planned task: %w", err)
	}
	return toTaskView(task), nil
}

func (cs *calendarService) GetTasks(ctx context.Context, userID uuid.UUID, date string) ([]*TaskView, error) {
	tasks, err := cs.taskRepo.ListByUserIDAndDate(ctx, nil, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned tasks: %w", err)
	}
	views := make([]*TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	return views, nil
}

func (cs *calendarService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, task, taskTime string) error {
	affected, err := cs.taskRepo.UpdateFields(ctx, nil, userID, taskID, map[string]interface{}{
		"task": task,
		"time": taskTime,
	})
	if err != nil {
		return fmt.Errorf("failed to update planned task: %w", err)
	}
	if affected == 0 {
		return types.NotFound(fmt.Errorf("task not found"))
	}
	return nil
}

func (cs *calendarService) ToggleTask(ctx context.Context, userID, taskID uuid.UUID, completed bool) error {
	affected, err := cs.taskRepo.UpdateFields(ctx, nil, userID, taskID, map[string]interface{}{
		"completed": completed,
	})
	if err != nil {
		return fmt.Errorf("failed to toggle planned task: %w", err)
	}
	if affected == 0 {
		return types.NotFound(fmt.Errorf("task not found"))
	}
	return nil
}

func (cs *calendarService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	affected, err := cs.taskRepo.DeleteOwnedByID(ctx, nil, userID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete planned task: %w", err)
	}
	if affected == 0 {
		return types.NotFound(fmt.Errorf("task not found"))
	}
	return nil
}

func (cs *calendarService) ResetTasks(ctx context.Context, userID uuid.UUID, date string) error {
	if err := cs.taskRepo.DeleteByUserID(ctx, nil, userID, date); err != nil {
		return fmt.Errorf("failed to reset planned tasks: %w", err)
	}
	return nil
}

func marshalList(items []string) (datatypes.JSON, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}

func toTaskView(t *types.PlannedTask) *TaskView {
	return &TaskView{
		ID:                 t.ID,
		Date:               t.Date,
		Time:               t.Time,
		Task:               t.Task,
		Type:               t.Type,
		Reason:             t.Reason,
		KeyConcepts:        unmarshalList(t.KeyConcepts),
		SuggestedResources: unmarshalList(t.SuggestedResources),
		Completed:          t.Completed,
	}
}
