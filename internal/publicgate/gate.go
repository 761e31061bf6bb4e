// Package publicgate implements the password-gated emergency view of a public link.
//
// A Gate lives for a single page load:
//
//	CheckingLink -> LinkNotFound
//	CheckingLink -> AwaitingPassword -> Authenticated
//
// Nothing is persisted. A reload starts again from CheckingLink.
package publicgate

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
)

// State of a gate
type State int

const (
	CheckingLink State = iota
	LinkNotFound
	AwaitingPassword
	Authenticated
)

func (s State) String() string {
	switch s {
	case CheckingLink:
		return "checking-link"
	case LinkNotFound:
		return "link-not-found"
	case AwaitingPassword:
		return "awaiting-password"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User-facing messages
const (
	MsgCheckFailed   = "Could not verify the link. Please try again later."
	MsgPasswordBlank = "Please enter the access password."
	MsgAccessDenied  = "Invalid link or password."
	MsgAccessGranted = "Access granted."
)

// Service is the public (no 401 policy) part of the API client
type Service interface {
	CheckPublicLink(ctx context.Context, id string) (*model.PublicLinkCheck, error)
	PublicProfile(ctx context.Context, id, password string) (*model.PublicProfile, error)
}

// Gate is the access state machine for one link identifier
type Gate struct {
	svc Service
	id  string
	log *logger.Logger

	state       State
	ownerName   string
	hasPassword bool
	profile     *model.PublicProfile
	err         string
	notice      string
}

// New creates a gate in CheckingLink
func New(svc Service, id string) *Gate {
	return &Gate{
		svc:   svc,
		id:    strings.TrimSpace(id),
		log:   logger.WithFields(logger.F("component", "publicgate")),
		state: CheckingLink,
	}
}

// ValidID reports whether id has the shape of a public link identifier
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Check resolves CheckingLink with a single lookup. Other states are left unchanged.
func (g *Gate) Check(ctx context.Context) State {
	if g.state != CheckingLink {
		return g.state
	}

	if !ValidID(g.id) {
		g.state = LinkNotFound
		return g.state
	}

	info, err := g.svc.CheckPublicLink(ctx, g.id)
	switch {
	case err != nil:
		g.state = LinkNotFound
		if !api.IsNotFound(err) {
			g.err = MsgCheckFailed
			g.log.Warn("Public link check failed", logger.F("error", api.Message(err)))
		}
	case info == nil || !info.Exists:
		g.state = LinkNotFound
	default:
		g.ownerName = info.OwnerName
		g.hasPassword = info.HasPassword
		g.state = AwaitingPassword
	}
	return g.state
}

// Submit trades the access password for the profile. It only acts in AwaitingPassword.
func (g *Gate) Submit(ctx context.Context, password string) State {
	if g.state != AwaitingPassword {
		return g.state
	}

	g.err, g.notice = "", ""
	password = strings.TrimSpace(password)
	if password == "" {
		g.err = MsgPasswordBlank
		return g.state
	}

	profile, err := g.svc.PublicProfile(ctx, g.id, password)
	if err != nil {
		switch api.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			g.err = MsgAccessDenied
		default:
			g.err = api.Message(err)
		}
		return g.state
	}
	if profile == nil {
		g.err = MsgAccessDenied
		return g.state
	}

	g.profile = profile
	g.notice = MsgAccessGranted
	g.state = Authenticated
	g.log.Info("Public profile accessed")
	return g.state
}

func (g *Gate) State() State { return g.state }
func (g *Gate) ID() string { return g.id }
func (g *Gate) OwnerName() string { return g.ownerName }
func (g *Gate) HasPassword() bool { return g.hasPassword }
func (g *Gate) Profile() *model.PublicProfile { return g.profile }

// Alert is the message to show next to the form, if any
func (g *Gate) Alert() string { return g.err }

// Notice is the success message, if any
func (g *Gate) Notice() string { return g.notice }
