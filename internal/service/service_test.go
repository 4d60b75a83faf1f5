package service

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"taskdeck/internal/auth"
	"taskdeck/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(db), auth.NewTokens("test-secret", time.Hour))
}
