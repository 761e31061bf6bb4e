package session

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/model"
)

type fakeAuth struct {
	mu           sync.Mutex
	profileCalls int
	user         *model.User
	token        string
	loginErr     error
	profileErr   error
	forgotEmail  string

	omitLoginUser bool
}

func (f *fakeAuth) Login(ctx context.Context, creds model.Credentials) (*model.AuthPayload, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.omitLoginUser {
		return &model.AuthPayload{Token: f.token}, nil
	}
	return &model.AuthPayload{Token: f.token, User: f.user}, nil
}

func (f *fakeAuth) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthPayload, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &model.AuthPayload{Token: f.token, User: &model.User{ID: 9, Email: req.Email, Name: req.Name}}, nil
}

func (f *fakeAuth) ForgotPassword(ctx context.Context, email string) error {
	f.forgotEmail = email
	return nil
}

func (f *fakeAuth) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token != "good" {
		return &api.Error{Status: http.StatusBadRequest, Message: "Invalid or expired token"}
	}
	return nil
}

func (f *fakeAuth) VerifyResetToken(ctx context.Context, token string) error {
	return f.ResetPassword(ctx, token, "")
}

func (f *fakeAuth) Profile(ctx context.Context) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	u := *f.user
	return &u, nil
}

func newFake() *fakeAuth {
	return &fakeAuth{
		token: "tok-1",
		user:  &model.User{ID: 1, Email: "ana@example.com", Name: "Ana", Surname: "Souza"},
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestNewStore_StartsLoading(t *testing.T) {
	s := NewStore(newFake(), NewMemoryTokenStore())

	st := s.Snapshot()
	assert.True(t, st.Loading)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
}

func TestStore_LoginThenRefresh(t *testing.T) {
	svc := newFake()
	tokens := NewMemoryTokenStore()
	s := NewStore(svc, tokens)

	res := s.Login(context.Background(), "ana@example.com", "secret1")
	require.True(t, res.Success, res.Error)

	s.RefreshUser(context.Background())

	st := s.Snapshot()
	assert.True(t, st.Authenticated)
	assert.False(t, st.Loading)
	require.NotNil(t, st.User)
	assert.Equal(t, "ana@example.com", st.User.Email)

	token, ok := tokens.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-1", token)
}

func TestStore_LoginFailure(t *testing.T) {
	svc := newFake()
	svc.loginErr = &api.Error{
		Status: http.StatusBadRequest,
		Fields: []api.FieldError{{Field: "email", Message: "Invalid email"}},
	}
	tokens := NewMemoryTokenStore()
	s := NewStore(svc, tokens)

	res := s.Login(context.Background(), "bad", "secret1")

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid email", res.Error)
	assert.Equal(t, map[string]string{"email": "Invalid email"}, res.Fields)
	_, ok := tokens.Token()
	assert.False(t, ok)
	assert.False(t, s.Snapshot().Authenticated)
}

func TestStore_LoginWithoutUserConfirmsToken(t *testing.T) {
	svc := newFake()
	svc.omitLoginUser = true
	s := NewStore(svc, NewMemoryTokenStore())

	res := s.Login(context.Background(), "ana@example.com", "secret1")

	require.True(t, res.Success)
	assert.Equal(t, 1, svc.profileCalls)
	assert.Equal(t, "Ana", s.Snapshot().User.Name)
}

func TestStore_Register(t *testing.T) {
	s := NewStore(newFake(), NewMemoryTokenStore())

	res := s.Register(context.Background(), model.RegisterRequest{Email: "new@example.com", Name: "Bia"})

	require.True(t, res.Success)
	st := s.Snapshot()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "Bia", st.User.Name)
}

func TestStore_Logout(t *testing.T) {
	tokens := NewMemoryTokenStore()
	s := NewStore(newFake(), tokens)
	require.True(t, s.Login(context.Background(), "ana@example.com", "secret1").Success)

	s.Logout()

	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
	_, ok := tokens.Token()
	assert.False(t, ok)
}

func TestStore_Bootstrap(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		token         string
		profileErr    error
		authenticated bool
		profileCalls  int
		tokenKept     bool
	}{
		{name: "no_token", profileCalls: 0},
		{name: "opaque_token_valid", token: "opaque", authenticated: true, profileCalls: 1, tokenKept: true},
		{
			name:         "opaque_token_rejected",
			token:        "opaque",
			profileErr:   &api.Error{Status: http.StatusUnauthorized, Err: api.ErrUnauthorized},
			profileCalls: 1,
		},
		{
			name:         "network_failure_fails_closed",
			token:        "opaque",
			profileErr:   &api.Error{Err: context.DeadlineExceeded},
			profileCalls: 1,
		},
		{name: "expired_jwt_skips_fetch", token: "expired", profileCalls: 0},
		{name: "live_jwt_fetches", token: "live", authenticated: true, profileCalls: 1, tokenKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFake()
			svc.profileErr = tt.profileErr
			tokens := NewMemoryTokenStore()

			switch tt.token {
			case "":
			case "expired":
				require.NoError(t, tokens.SetToken(signedToken(t, now.Add(-time.Hour))))
			case "live":
				require.NoError(t, tokens.SetToken(signedToken(t, now.Add(time.Hour))))
			default:
				require.NoError(t, tokens.SetToken(tt.token))
			}

			s := NewStore(svc, tokens, WithClock(func() time.Time { return now }))
			s.Bootstrap(context.Background())

			st := s.Snapshot()
			assert.False(t, st.Loading)
			assert.Equal(t, tt.authenticated, st.Authenticated)
			assert.Equal(t, tt.profileCalls, svc.profileCalls)
			_, ok := tokens.Token()
			assert.Equal(t, tt.tokenKept, ok)
		})
	}
}

func TestStore_RefreshFailureClearsSession(t *testing.T) {
	svc := newFake()
	tokens := NewMemoryTokenStore()
	s := NewStore(svc, tokens)
	require.True(t, s.Login(context.Background(), "ana@example.com", "secret1").Success)

	svc.profileErr = &api.Error{Status: http.StatusInternalServerError}
	s.RefreshUser(context.Background())

	st := s.Snapshot()
	assert.False(t, st.Authenticated)
	assert.False(t, st.Loading)
	_, ok := tokens.Token()
	assert.False(t, ok)
}

func TestStore_UpdateUser(t *testing.T) {
	s := NewStore(newFake(), NewMemoryTokenStore())

	phone := "(11) 98765-4321"
	s.UpdateUser(model.UserPatch{Phone: &phone})
	assert.Nil(t, s.Snapshot().User)

	require.True(t, s.Login(context.Background(), "ana@example.com", "secret1").Success)

	name := "Ana Clara"
	s.UpdateUser(model.UserPatch{Name: &name, Phone: &phone})

	u := s.Snapshot().User
	assert.Equal(t, "Ana Clara", u.Name)
	assert.Equal(t, "Souza", u.Surname)
	assert.Equal(t, phone, u.Phone)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := NewStore(newFake(), NewMemoryTokenStore())
	require.True(t, s.Login(context.Background(), "ana@example.com", "secret1").Success)

	s.Snapshot().User.Name = "Mutated"

	assert.Equal(t, "Ana", s.Snapshot().User.Name)
}

func TestStore_PasswordFlowsLeaveSessionAlone(t *testing.T) {
	svc := newFake()
	s := NewStore(svc, NewMemoryTokenStore())
	s.Bootstrap(context.Background())

	assert.True(t, s.ForgotPassword(context.Background(), "ana@example.com").Success)
	assert.Equal(t, "ana@example.com", svc.forgotEmail)

	res := s.ResetPassword(context.Background(), "bad", "NewPass123")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid or expired token", res.Error)

	assert.True(t, s.VerifyResetToken(context.Background(), "good").Success)
	assert.False(t, s.Snapshot().Authenticated)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(newFake(), NewMemoryTokenStore())
	require.True(t, s.Login(context.Background(), "ana@example.com", "secret1").Success)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.RefreshUser(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.True(t, s.Snapshot().Authenticated)
}

func TestMemoryTokenStore_Expiry(t *testing.T) {
	now := time.Now()
	m := NewMemoryTokenStore()
	m.now = func() time.Time { return now }

	require.NoError(t, m.SetToken("t"))
	_, ok := m.Token()
	assert.True(t, ok)

	now = now.Add(TokenTTL)
	_, ok = m.Token()
	assert.False(t, ok)
}
