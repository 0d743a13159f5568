package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cerebra-app/cerebra-backend/internal/types"
)

func TestLogSession_AccumulatesXP(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	total, err := te.study.LogSession(context.Background(), user.ID, "Calculus", 25, 50)
	if err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	if total != 50 {
		t.Fatalf("expected total 50, got %d", total)
	}

	total, err = te.study.LogSession(context.Background(), user.ID, "Algebra", 25, 30)
	if err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	if total != 80 {
		t.Fatalf("expected total 80, got %d", total)
	}
}

func TestLogSession_ClampsTotalAtZero(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	if _, err := te.study.LogSession(context.Background(), user.ID, "Calculus", 25, 30); err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	total, err := te.study.LogSession(context.Background(), user.ID, "Skipped", 0, -100)
	if err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected total clamped to 0, got %d", total)
	}

	stats, err := te.stats.GetByUserID(context.Background(), nil, user.ID)
	if err != nil || stats == nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.TotalXP != 0 {
		t.Fatalf("stored total not clamped: %d", stats.TotalXP)
	}
}

func TestLogSession_CreatesStatsLazily(t *testing.T) {
	te := newTestEnv(t)

	// An account predating registration-time stats creation.
	user := &types.User{ID: uuid.New(), Username: "legacy", Password: "x"}
	if err := te.users.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	total, err := te.study.LogSession(context.Background(), user.ID, "Calculus", 25, 10)
	if err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	if total != 10 {
		t.Fatalf("expected total 10, got %d", total)
	}
}

func TestGetStats_LimitAndOrder(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	base := time.Now().UTC().Add(-2 * time.Hour)
	for i := 0; i < 55; i++ {
		studyLog := &types.StudyLog{
			ID:              uuid.New(),
			UserID:          user.ID,
			Topic:           fmt.Sprintf("topic-%d", i),
			DurationMinutes: 10,
			XPEarned:        1,
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := te.logs.Create(context.Background(), nil, studyLog); err != nil {
			t.Fatalf("failed to create log: %v", err)
		}
	}

	stats, err := te.study.GetStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if len(stats.History) != 50 {
		t.Fatalf("expected 50 history rows, got %d", len(stats.History))
	}
	if stats.History[0].Topic != "topic-54" {
		t.Fatalf("expected newest row first, got %s", stats.History[0].Topic)
	}
	for i := 1; i < len(stats.History); i++ {
		if stats.History[i].Timestamp.After(stats.History[i-1].Timestamp) {
			t.Fatalf("history not ordered newest-first at index %d", i)
		}
	}
}

func TestGetStats_ScopedToUser(t *testing.T) {
	te := newTestEnv(t)
	alice := te.registerUser(t, "alice", "pw1")
	bob := te.registerUser(t, "bob", "pw2")

	if _, err := te.study.LogSession(context.Background(), alice.ID, "Calculus", 25, 50); err != nil {
		t.Fatalf("log session failed: %v", err)
	}
	if _, err := te.study.LogSession(context.Background(), bob.ID, "History", 25, 70); err != nil {
		t.Fatalf("log session failed: %v", err)
	}

	aliceStats, err := te.study.GetStats(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if aliceStats.TotalXP != 50 {
		t.Fatalf("expected alice total 50, got %d", aliceStats.TotalXP)
	}
	if len(aliceStats.History) != 1 || aliceStats.History[0].Topic != "Calculus" {
		t.Fatalf("alice history contaminated: %+v", aliceStats.History)
	}

	bobStats, err := te.study.GetStats(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if bobStats.TotalXP != 70 || len(bobStats.History) != 1 {
		t.Fatalf("bob stats contaminated: total=%d len=%d", bobStats.TotalXP, len(bobStats.History))
	}
}

func TestResetHistory(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	if _, err := te.study.LogSession(context.Background(), user.ID, "Calculus", 25, 50); err != nil {
		t.Fatalf("log session failed: %v", err)
	}

	// Without resetXP the total survives the wipe.
	if err := te.study.ResetHistory(context.Background(), user.ID, false); err != nil {
		t.Fatalf("reset history failed: %v", err)
	}
	stats, err := te.study.GetStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if len(stats.History) != 0 {
		t.Fatalf("expected empty history, got %d rows", len(stats.History))
	}
	if stats.TotalXP != 50 {
		t.Fatalf("expected xp kept, got %d", stats.TotalXP)
	}

	if err := te.study.ResetHistory(context.Background(), user.ID, true); err != nil {
		t.Fatalf("reset history failed: %v", err)
	}
	stats, err = te.study.GetStats(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get stats failed: %v", err)
	}
	if stats.TotalXP != 0 {
		t.Fatalf("expected xp zeroed, got %d", stats.TotalXP)
	}
}
