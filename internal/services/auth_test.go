package services

import (
	"context"
	"testing"
	"time"

	"github.com/cerebra-app/cerebra-backend/internal/requestdata"
	"github.com/cerebra-app/cerebra-backend/internal/types"
)

func TestRegisterUser_CreatesUserAndStats(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	stats, err := te.stats.GetByUserID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats == nil {
		t.Fatalf("expected stats row created at registration")
	}
	if stats.TotalXP != 0 {
		t.Fatalf("expected zero xp, got %d", stats.TotalXP)
	}
	if user.Password == "pw1" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestRegisterUser_DuplicateUsernameConflict(t *testing.T) {
	te := newTestEnv(t)
	first := te.registerUser(t, "alice", "pw1")

	_, err := te.auth.RegisterUser(context.Background(), "alice", "pw2")
	if err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if !types.IsCode(err, types.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// First registration's rows stay intact.
	user, err := te.users.GetByUsername(context.Background(), nil, "alice")
	if err != nil || user == nil {
		t.Fatalf("original user missing after conflict: %v", err)
	}
	if user.ID != first.ID {
		t.Fatalf("original user replaced")
	}
	stats, err := te.stats.GetByUserID(context.Background(), nil, first.ID)
	if err != nil || stats == nil {
		t.Fatalf("original stats missing after conflict: %v", err)
	}
}

func TestLoginUser_BadCredentials(t *testing.T) {
	te := newTestEnv(t)
	te.registerUser(t, "alice", "pw1")

	if _, err := te.auth.LoginUser(context.Background(), "alice", "wrong"); !types.IsCode(err, types.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := te.auth.LoginUser(context.Background(), "nobody", "pw1"); !types.IsCode(err, types.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
}

func TestToken_RoundTrip(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	token, err := te.auth.LoginUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	ctx, err := te.auth.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("token rejected: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("no request data on context")
	}
	if rd.UserID != user.ID || rd.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", rd)
	}
}

func TestToken_ExpiredRejected(t *testing.T) {
	te := newTestEnv(t)
	te.registerUser(t, "alice", "pw1")

	// A service with a negative TTL issues tokens that are already past
	// their expiry.
	expired := NewAuthService(te.db, te.log, te.users, te.stats, "test-secret", -time.Minute)
	token, err := expired.LoginUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = te.auth.SetContextFromToken(context.Background(), token)
	if !types.IsCode(err, types.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for expired token, got %v", err)
	}
}

func TestToken_WrongSecretRejected(t *testing.T) {
	te := newTestEnv(t)
	te.registerUser(t, "alice", "pw1")

	other := NewAuthService(te.db, te.log, te.users, te.stats, "other-secret", 300*time.Minute)
	token, err := other.LoginUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = te.auth.SetContextFromToken(context.Background(), token)
	if !types.IsCode(err, types.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for forged token, got %v", err)
	}
}

func TestToken_DeletedUserRejected(t *testing.T) {
	te := newTestEnv(t)
	user := te.registerUser(t, "alice", "pw1")

	token, err := te.auth.LoginUser(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := te.db.Where("id = ?", user.ID).Delete(&types.User{}).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	_, err = te.auth.SetContextFromToken(context.Background(), token)
	if !types.IsCode(err, types.CodeUnauthorized) {
		t.Fatalf("expected unauthorized once user is gone, got %v", err)
	}
}
