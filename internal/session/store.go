// Package session holds the authentication state of one client: the current user, the
// loading flag and the persisted bearer token.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
)

// AuthService is the part of the API client the store depends on
type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthPayload, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthPayload, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	VerifyResetToken(ctx context.Context, token string) error
	Profile(ctx context.Context) (*model.User, error)
}

// Result is the outcome of a session action
type Result struct {
	Success bool
	Error   string
	Fields  map[string]string
}

func failure(err error) Result {
	return Result{Error: api.Message(err), Fields: api.FieldErrors(err)}
}

// State is a snapshot of the session
type State struct {
	User          *model.User
	Loading       bool
	Authenticated bool
}

// Store is the session of one browser request or one terminal process
type Store struct {
	svc    AuthService
	tokens TokenStore
	now    func() time.Time
	log    *logger.Logger

	mu      sync.RWMutex
	user    *model.User
	loading bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the clock used for the token expiry check
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates a store in the loading state
func NewStore(svc AuthService, tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		svc:     svc,
		tokens:  tokens,
		now:     time.Now,
		log:     logger.WithFields(logger.F("component", "session")),
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, hasToken := s.tokens.Token()
	st := State{Loading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	st.Authenticated = st.User != nil && hasToken
	return st
}

// User returns a copy of the cached user, or nil
func (s *Store) User() *model.User {
	return s.Snapshot().User
}

// Login authenticates, persists the token and caches the user
func (s *Store) Login(ctx context.Context, email, password string) Result {
	payload, err := s.svc.Login(ctx, model.Credentials{Email: email, Password: password})
	if err != nil {
		s.log.Info("Login failed", logger.F("status", api.StatusCode(err)))
		return failure(err)
	}
	return s.establish(ctx, payload)
}

// Register creates an account and signs in with it
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) Result {
	payload, err := s.svc.Register(ctx, req)
	if err != nil {
		s.log.Info("Registration failed", logger.F("status", api.StatusCode(err)))
		return failure(err)
	}
	return s.establish(ctx, payload)
}

func (s *Store) establish(ctx context.Context, payload *model.AuthPayload) Result {
	if err := s.tokens.SetToken(payload.Token); err != nil {
		s.log.Error("Failed to persist session token", logger.F("error", err))
		return Result{Error: api.GenericMessage}
	}

	s.mu.Lock()
	if payload.User != nil {
		u := *payload.User
		s.user = &u
	}
	s.loading = false
	s.mu.Unlock()

	if payload.User == nil {
		// Token without user: confirm it the same way a bootstrap does
		s.RefreshUser(ctx)
	}
	if !s.Snapshot().Authenticated {
		return Result{Error: api.GenericMessage}
	}

	s.log.Info("Signed in", logger.F("user_id", s.Snapshot().User.ID))
	return Result{Success: true}
}

// ForgotPassword requests a reset email. The session is not touched.
func (s *Store) ForgotPassword(ctx context.Context, email string) Result {
	if err := s.svc.ForgotPassword(ctx, email); err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

// ResetPassword sets a new password from an emailed token. The session is not touched.
func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) Result {
	if err := s.svc.ResetPassword(ctx, token, newPassword); err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

// VerifyResetToken checks an emailed token. The session is not touched.
func (s *Store) VerifyResetToken(ctx context.Context, token string) Result {
	if err := s.svc.VerifyResetToken(ctx, token); err != nil {
		return failure(err)
	}
	return Result{Success: true}
}

// Logout drops the token and the cached user. It is local only.
func (s *Store) Logout() {
	if err := s.tokens.ClearToken(); err != nil {
		s.log.Warn("Failed to clear session token", logger.F("error", err))
	}

	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
}

// RefreshUser re-fetches the profile. Any failure ends the session.
func (s *Store) RefreshUser(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	s.confirm(ctx)

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Bootstrap resolves the initial loading state. A present token is confirmed with a
// profile fetch; a token whose JWT exp claim has passed is dropped without one.
func (s *Store) Bootstrap(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, ok := s.tokens.Token()
	if !ok {
		return
	}
	if expired(token, s.now()) {
		s.log.Info("Session token expired")
		s.Logout()
		return
	}
	s.confirm(ctx)
}

// confirm fetches the profile with the stored token and fails closed
func (s *Store) confirm(ctx context.Context) {
	if _, ok := s.tokens.Token(); !ok {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return
	}

	user, err := s.svc.Profile(ctx)
	if err != nil || user == nil {
		if err == nil {
			err = errors.New("empty profile")
		}
		s.log.Info("Session token rejected", logger.F("error", api.Message(err)))
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// UpdateUser merges fields into the cached user without a round trip
func (s *Store) UpdateUser(patch model.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return
	}
	patch.Apply(s.user)
}

// expired reports whether token is a JWT whose exp claim is not after now. The signature
// is not checked; only the backend can do that.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
