package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cerebra-app/cerebra-backend/internal/logger"
	"github.com/cerebra-app/cerebra-backend/internal/repos"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A second pooled connection would see a fresh empty :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.User{},
		&types.UserStats{},
		&types.StudyLog{},
		&types.PlannedTask{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

type testEnv struct {
	db       *gorm.DB
	log      *logger.Logger
	users    repos.UserRepo
	stats    repos.UserStatsRepo
	logs     repos.StudyLogRepo
	tasks    repos.PlannedTaskRepo
	auth     AuthService
	study    StudyService
	calendar CalendarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	users := repos.NewUserRepo(db, log)
	stats := repos.NewUserStatsRepo(db, log)
	logs := repos.NewStudyLogRepo(db, log)
	tasks := repos.NewPlannedTaskRepo(db, log)
	return &testEnv{
		db:       db,
		log:      log,
		users:    users,
		stats:    stats,
		logs:     logs,
		tasks:    tasks,
		auth:     NewAuthService(db, log, users, stats, "test-secret", 300*time.Minute),
		study:    NewStudyService(db, log, logs, stats),
		calendar: NewCalendarService(db, log, tasks),
	}
}

func (te *testEnv) registerUser(t *testing.T, username, password string) *types.User {
	t.Helper()
	user, err := te.auth.RegisterUser(context.Background(), username, password)
	if err != nil {
		t.Fatalf("failed to register %s: %v", username, err)
	}
	return user
}

// fakeGemini returns canned payloads and counts calls, so tests can assert
// that rejected inputs never reach the external service.
type fakeGemini struct {
	response json.RawMessage
	err      error
	calls    int
}

func (fg *fakeGemini) GenerateJSON(ctx context.Context, parts []Part) (json.RawMessage, error) {
	fg.calls++
	if fg.err != nil {
		return nil, fg.err
	}
	return fg.response, nil
}
