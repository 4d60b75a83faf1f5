package store

import (
	"context"
	"strings"
	"sync"

	"taskdeck/internal/model"
)

// AuthState names the phases of the session lifecycle.
type AuthState int

const (
	StateLoading AuthState = iota
	StateUnauthenticated
	StateAuthenticated
	StateError
)

func (s AuthState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Session is what the backend reports about the signed-in user.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	Avatar      string
}

// ProfileUpdate carries editable profile fields.
type ProfileUpdate struct {
	DisplayName string
	Email       string
	Avatar      string
}

// AuthBackend is the remote side of authentication. Implementations must
// invoke the session-change callback registered through the store's owner
// after a successful sign-in or sign-out.
type AuthBackend interface {
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, email, password, displayName string) error
	SignOut(ctx context.Context) error
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error)
}

// AuthStore tracks the current session. It starts in StateLoading until the
// backend reports session status through HandleSession. Only one auth
// operation is expected in flight at a time; overlapping calls are a caller
// contract violation and are not guarded against here.
type AuthStore struct {
	notifier

	backend AuthBackend

	mu     sync.RWMutex
	state  AuthState
	user   *model.User
	errMsg string
}

func NewAuthStore(backend AuthBackend) *AuthStore {
	return &AuthStore{backend: backend, state: StateLoading}
}

// State returns the current lifecycle phase.
func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user, or false when there is none.
func (s *AuthStore) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Err returns the last recorded error message, if any.
func (s *AuthStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// HandleSession is the session-change notification entry point. A non-nil
// session moves the store to authenticated; nil moves it to unauthenticated.
func (s *AuthStore) HandleSession(sess *Session) {
	s.mu.Lock()
	if sess == nil {
		s.state = StateUnauthenticated
		s.user = nil
		s.errMsg = ""
	} else {
		displayName := sess.DisplayName
		if displayName == "" {
			displayName = localPart(sess.Email)
		}
		s.state = StateAuthenticated
		s.user = &model.User{
			ID:          sess.UserID,
			Email:       sess.Email,
			DisplayName: displayName,
			Avatar:      sess.Avatar,
		}
		s.errMsg = ""
	}
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate})
}

// Login signs in through the backend. On success the backend's session-change
// notification drives the transition to authenticated; on failure the store
// records the backend's message verbatim.
func (s *AuthStore) Login(ctx context.Context, email, password string) {
	s.setLoading()
	if err := s.backend.SignIn(ctx, email, password); err != nil {
		s.setError(err.Error())
	}
}

// Signup registers a new account; displayName is stored as session metadata.
func (s *AuthStore) Signup(ctx context.Context, email, password, displayName string) {
	s.setLoading()
	if err := s.backend.SignUp(ctx, email, password, displayName); err != nil {
		s.setError(err.Error())
	}
}

// Logout signs out. On failure the store keeps its state and records the error.
func (s *AuthStore) Logout(ctx context.Context) {
	if err := s.backend.SignOut(ctx); err != nil {
		s.mu.Lock()
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.publish(Event{Op: OpUpdate})
		return
	}

	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.errMsg = ""
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate})
}

// UpdateProfile pushes profile changes to the backend and merges the returned
// fields into the current user.
func (s *AuthStore) UpdateProfile(ctx context.Context, update ProfileUpdate) {
	s.setLoading()

	user, err := s.backend.UpdateProfile(ctx, update)
	if err != nil {
		s.setError(err.Error())
		return
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.errMsg = ""
	if s.user == nil {
		s.user = &model.User{}
	}
	s.user.DisplayName = user.DisplayName
	s.user.Email = user.Email
	if user.Avatar != "" {
		s.user.Avatar = user.Avatar
	}
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate})
}

func (s *AuthStore) setLoading() {
	s.mu.Lock()
	s.state = StateLoading
	s.errMsg = ""
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate})
}

func (s *AuthStore) setError(msg string) {
	s.mu.Lock()
	s.state = StateError
	s.errMsg = msg
	s.mu.Unlock()

	s.publish(Event{Op: OpUpdate})
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
