package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskdeck/internal/auth"
	"taskdeck/internal/model"
	"taskdeck/internal/repository"
)

// AuthService handles account registration, login and profile updates.
type AuthService struct {
	userRepo *repository.UserRepository
	tokens   *auth.Tokens
}

func NewAuthService(userRepo *repository.UserRepository, tokens *auth.Tokens) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Signup registers a new account and returns the user with a session token.
// An empty displayName falls back to the email's local part.
func (s *AuthService) Signup(ctx context.Context, email, password, displayName string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", auth.ErrEmailTaken
	case errors.Is(err, gorm.ErrRecordNotFound):
		// proceed
	default:
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	if displayName == "" {
		if i := strings.Index(email, "@"); i > 0 {
			displayName = email[:i]
		}
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, time.Now())
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", auth.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, time.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Profile returns the caller's profile record.
func (s *AuthService) Profile(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// ProfileInput carries editable profile fields. Nil fields are left untouched.
type ProfileInput struct {
	DisplayName    *string
	Email          *string
	Avatar         *string
	TelegramChatID *int64
}

// UpdateProfile merges the provided fields into the caller's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if input.DisplayName != nil {
		fields["display_name"] = *input.DisplayName
	}
	if input.Email != nil {
		fields["email"] = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Avatar != nil {
		fields["avatar"] = *input.Avatar
	}
	if input.TelegramChatID != nil {
		fields["telegram_chat_id"] = *input.TelegramChatID
	}
	if len(fields) == 0 {
		return s.userRepo.FindByID(ctx, userID)
	}
	return s.userRepo.UpdateProfile(ctx, userID, fields)
}
