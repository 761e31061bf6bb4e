package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/session"
)

func TestDecide(t *testing.T) {
	user := &model.User{ID: 1, Name: "Ana"}

	tests := []struct {
		name     string
		state    session.State
		expected Outcome
	}{
		{"loading_unauthenticated", session.State{Loading: true}, ShowLoading},
		{"loading_authenticated", session.State{Loading: true, Authenticated: true, User: user}, ShowLoading},
		{"ready_unauthenticated", session.State{}, RedirectLogin},
		{"ready_user_without_token", session.State{User: user}, RedirectLogin},
		{"ready_authenticated", session.State{Authenticated: true, User: user}, RenderContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.state))
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "show-loading", ShowLoading.String())
	assert.Equal(t, "redirect-login", RedirectLogin.String())
	assert.Equal(t, "render-content", RenderContent.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
