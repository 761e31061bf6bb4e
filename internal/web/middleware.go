package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/guard"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/model"
	"github.com/existflow/medshare/internal/session"
)

const requestKey = "medshare.request"

// request is the per-request session: cookie token store, authenticated API client and
// session store
type request struct {
	tokens *cookieTokenStore
	client *api.Client
	store  *session.Store

	mu      sync.Mutex
	evicted bool
}

// evict clears the token once, however many concurrent calls were rejected
func (r *request) evict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evicted {
		return
	}
	r.evicted = true
	r.tokens.ClearToken()
}

func (r *request) isEvicted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evicted
}

func (r *request) resetEvicted() {
	r.mu.Lock()
	r.evicted = false
	r.mu.Unlock()
}

// authService sends the credential calls on the client without the eviction policy, so a
// rejected password is reported as a form error. Only the profile fetch evicts.
type authService struct {
	*api.Client
	authed *api.Client
}

func (a authService) Profile(ctx context.Context) (*model.User, error) {
	return a.authed.Profile(ctx)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)

		res := c.Response()
		logger.Info("HTTP Response",
			logger.F("method", req.Method),
			logger.F("path", req.URL.Path),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
			logger.F("duration", time.Since(start).String()))

		return err
	}
}

// sessionMiddleware builds the per-request session. Any 401 from the authenticated client
// removes the token and ends the request with a redirect to the login page.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := &request{tokens: newCookieTokenStore(c, s.cfg.IsProduction())}
		r.client = s.api.With(
			api.WithTokenSource(r.tokens),
			api.WithUnauthorizedHandler(func(ctx context.Context) {
				r.evict()
			}),
		)
		r.store = session.NewStore(authService{Client: s.api, authed: r.client}, r.tokens)
		c.Set(requestKey, r)

		err := next(c)

		if r.isEvicted() && !c.Response().Committed {
			return c.Redirect(http.StatusSeeOther, guard.LoginPath)
		}
		return err
	}
}

func reqOf(c echo.Context) *request {
	return c.Get(requestKey).(*request)
}

// requireAuth resolves the session and applies the route guard
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := reqOf(c)
		r.store.Bootstrap(c.Request().Context())

		switch guard.Decide(r.store.Snapshot()) {
		case guard.ShowLoading:
			c.Response().Header().Set("Refresh", "1")
			return c.Render(http.StatusOK, "loading", Page{Title: "Loading"})
		case guard.RedirectLogin:
			return c.Redirect(http.StatusSeeOther, guard.LoginPath)
		default:
			return next(c)
		}
	}
}
