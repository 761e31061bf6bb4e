package publicgate

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/model"
)

const linkID = "0b7e1c9a-6f2d-4f8e-9a51-3c2d1e0f4a5b"

type fakePublic struct {
	checkCalls   int
	profileCalls int
	check        *model.PublicLinkCheck
	checkErr     error
	password     string
	profileErr   error
}

func (f *fakePublic) CheckPublicLink(ctx context.Context, id string) (*model.PublicLinkCheck, error) {
	f.checkCalls++
	return f.check, f.checkErr
}

func (f *fakePublic) PublicProfile(ctx context.Context, id, password string) (*model.PublicProfile, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if password != f.password {
		return nil, &api.Error{Status: http.StatusUnauthorized, Message: "Senha incorreta"}
	}
	return &model.PublicProfile{Name: "Ana", FullName: "Ana Souza"}, nil
}

func existing() *fakePublic {
	return &fakePublic{
		check:    &model.PublicLinkCheck{Exists: true, OwnerName: "Ana Souza", HasPassword: true},
		password: "Abc123!xyz",
	}
}

func TestGate_InvalidIdentifierNeverCallsBackend(t *testing.T) {
	for _, id := range []string{"", "abc", "123", "../users/profile", linkID + "x"} {
		t.Run(id, func(t *testing.T) {
			svc := existing()
			g := New(svc, id)

			assert.Equal(t, LinkNotFound, g.Check(context.Background()))
			assert.Equal(t, LinkNotFound, g.Submit(context.Background(), "Abc123!xyz"))
			assert.Zero(t, svc.checkCalls)
			assert.Zero(t, svc.profileCalls)
		})
	}
}

func TestGate_Check(t *testing.T) {
	tests := []struct {
		name     string
		check    *model.PublicLinkCheck
		err      error
		expected State
		message  string
	}{
		{name: "exists", check: &model.PublicLinkCheck{Exists: true, OwnerName: "Ana"}, expected: AwaitingPassword},
		{name: "does_not_exist", check: &model.PublicLinkCheck{Exists: false}, expected: LinkNotFound},
		{name: "not_found", err: &api.Error{Status: http.StatusNotFound}, expected: LinkNotFound},
		{name: "transport_error", err: &api.Error{Err: context.DeadlineExceeded}, expected: LinkNotFound, message: MsgCheckFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePublic{check: tt.check, checkErr: tt.err}
			g := New(svc, linkID)

			assert.Equal(t, CheckingLink, g.State())
			assert.Equal(t, tt.expected, g.Check(context.Background()))
			assert.Equal(t, tt.message, g.Alert())
			assert.Equal(t, 1, svc.checkCalls)

			// A resolved gate does not check again
			g.Check(context.Background())
			assert.Equal(t, 1, svc.checkCalls)
		})
	}
}

func TestGate_WrongPasswordStaysAwaiting(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unauthorized", &api.Error{Status: http.StatusUnauthorized, Message: "Senha incorreta"}},
		{"forbidden", &api.Error{Status: http.StatusForbidden, Message: "Link desativado"}},
		{"not_found", &api.Error{Status: http.StatusNotFound, Message: "Link não encontrado"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := existing()
			svc.profileErr = tt.err
			g := New(svc, linkID)
			require.Equal(t, AwaitingPassword, g.Check(context.Background()))

			assert.Equal(t, AwaitingPassword, g.Submit(context.Background(), "wrong"))
			assert.Equal(t, MsgAccessDenied, g.Alert())
			assert.Nil(t, g.Profile())
		})
	}
}

func TestGate_OtherFailuresUseNormalizedMessage(t *testing.T) {
	svc := existing()
	svc.profileErr = &api.Error{Status: http.StatusTooManyRequests, Message: "Too many attempts"}
	g := New(svc, linkID)
	g.Check(context.Background())

	assert.Equal(t, AwaitingPassword, g.Submit(context.Background(), "whatever"))
	assert.Equal(t, "Too many attempts", g.Alert())
}

func TestGate_BlankPassword(t *testing.T) {
	svc := existing()
	g := New(svc, linkID)
	g.Check(context.Background())

	assert.Equal(t, AwaitingPassword, g.Submit(context.Background(), "   "))
	assert.Equal(t, MsgPasswordBlank, g.Alert())
	assert.Zero(t, svc.profileCalls)
}

func TestGate_Authenticated(t *testing.T) {
	svc := existing()
	g := New(svc, linkID)
	g.Check(context.Background())
	assert.Equal(t, "Ana Souza", g.OwnerName())
	assert.True(t, g.HasPassword())

	assert.Equal(t, AwaitingPassword, g.Submit(context.Background(), "bad"))
	assert.Equal(t, Authenticated, g.Submit(context.Background(), " Abc123!xyz "))
	assert.Empty(t, g.Alert())
	assert.Equal(t, MsgAccessGranted, g.Notice())
	require.NotNil(t, g.Profile())
	assert.Equal(t, "Ana Souza", g.Profile().FullName)

	// Terminal for the page load
	assert.Equal(t, Authenticated, g.Submit(context.Background(), "bad"))
	assert.Equal(t, 2, svc.profileCalls)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "checking-link", CheckingLink.String())
	assert.Equal(t, "link-not-found", LinkNotFound.String())
	assert.Equal(t, "awaiting-password", AwaitingPassword.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
