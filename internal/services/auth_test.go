package services

import (
	"context"
	"testing"
	"time"

	"github.com/skillpath/backend/internal/repos"
	"github.com/skillpath/backend/internal/requestdata"
	"github.com/skillpath/backend/internal/types"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	log := testLogger(t)
	return NewAuthService(db, log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		"test-secret",
		time.Minute,
		time.Hour,
	)
}

func TestAuthRegisterLoginFlow(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user := &types.User{Username: "bob", Email: "Bob@Example.com", Password: "hunter2"}
	if err := svc.RegisterUser(ctx, user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "hunter2" {
		t.Fatalf("password stored in clear")
	}

	if err := svc.RegisterUser(ctx, &types.User{Username: "bob", Email: "other@example.com", Password: "pw"}); err == nil {
		t.Fatalf("duplicate username accepted")
	}
	if err := svc.RegisterUser(ctx, &types.User{Username: "bob2", Email: "bob@example.com", Password: "pw"}); err == nil {
		t.Fatalf("duplicate email accepted")
	}

	access, refresh, err := svc.LoginUser(ctx, "bob", "hunter2")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty tokens")
	}
	if _, _, err := svc.LoginUser(ctx, "bob", "wrong"); err == nil {
		t.Fatalf("wrong password accepted")
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data: %+v", rd)
	}
	if rd.IsAdmin {
		t.Fatalf("regular user flagged admin")
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token not resolved from access token")
	}

	newAccess, newRefresh, err := svc.RefreshUser(authedCtx)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token not rotated")
	}
	if _, _, err := svc.RefreshUser(authedCtx); err == nil {
		t.Fatalf("old refresh token still valid after rotation")
	}

	rotatedCtx, err := svc.SetContextFromToken(ctx, newAccess)
	if err != nil {
		t.Fatalf("SetContextFromToken rotated: %v", err)
	}
	if err := svc.LogoutUser(rotatedCtx); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
}

func TestEnsureAdminUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.EnsureAdminUser(ctx, "admin", "admin@example.com", "secret"); err != nil {
		t.Fatalf("EnsureAdminUser: %v", err)
	}
	// Idempotent on the second run.
	if err := svc.EnsureAdminUser(ctx, "admin", "admin@example.com", "secret"); err != nil {
		t.Fatalf("EnsureAdminUser again: %v", err)
	}

	access, _, err := svc.LoginUser(ctx, "admin", "secret")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || !rd.IsAdmin {
		t.Fatalf("admin claim missing: %+v", rd)
	}
}
