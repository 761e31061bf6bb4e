// Package guard decides what a protected page shows for a given session state.
package guard

import "github.com/existflow/medshare/internal/session"

// Outcome is the result of guarding a protected route
type Outcome int

const (
	ShowLoading Outcome = iota
	RedirectLogin
	RenderContent
)

func (o Outcome) String() string {
	switch o {
	case ShowLoading:
		return "show-loading"
	case RedirectLogin:
		return "redirect-login"
	case RenderContent:
		return "render-content"
	default:
		return "unknown"
	}
}

// LoginPath is where unauthenticated visitors are sent
const LoginPath = "/login"

// Decide maps a session state to an outcome. It is evaluated on every render.
func Decide(st session.State) Outcome {
	if st.Loading {
		return ShowLoading
	}
	if !st.Authenticated {
		return RedirectLogin
	}
	return RenderContent
}
