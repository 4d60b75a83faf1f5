package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/auth"
	"taskdeck/internal/logging"
	"taskdeck/internal/repository"
	"taskdeck/internal/service"
	"taskdeck/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokens("test-secret", time.Hour)
	handler := api.NewHandler(
		service.NewAuthService(userRepo, tokens),
		service.NewTaskService(taskRepo, categoryRepo),
		service.NewCategoryService(categoryRepo),
		logging.New("error"),
	)

	server := httptest.NewServer(api.NewRouter(handler, tokens))
	t.Cleanup(server.Close)
	return server
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	c := New(server.URL)
	if err := c.SignUp(ctx, "jane@example.com", "secret1", "Jane"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	// Name only: the email must survive the merge untouched.
	user, err := c.UpdateProfile(ctx, store.ProfileUpdate{DisplayName: "Jane D."})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.DisplayName != "Jane D." {
		t.Errorf("displayName = %q", user.DisplayName)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("email changed to %q by a name-only update", user.Email)
	}

	user, err = c.UpdateProfile(ctx, store.ProfileUpdate{Email: "jane.d@example.com"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Email != "jane.d@example.com" || user.DisplayName != "Jane D." {
		t.Errorf("email-only update merged wrong: %q %q", user.DisplayName, user.Email)
	}
}

func TestSignInReportsSession(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	c := New(server.URL)
	if err := c.SignUp(ctx, "jane@example.com", "secret1", "Jane"); err != nil {
		t.Fatalf("sign up: %v", err)
	}

	var sessions []*store.Session
	c2 := New(server.URL)
	c2.OnSessionChange(func(s *store.Session) { sessions = append(sessions, s) })
	if len(sessions) != 1 || sessions[0] != nil {
		t.Fatalf("initial report = %+v, want one nil session", sessions)
	}

	if err := c2.SignIn(ctx, "jane@example.com", "secret1"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if len(sessions) != 2 || sessions[1] == nil || sessions[1].Email != "jane@example.com" {
		t.Fatalf("after sign-in sessions = %+v", sessions)
	}

	if err := c2.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(sessions) != 3 || sessions[2] != nil {
		t.Fatalf("after sign-out sessions = %+v", sessions)
	}
}
