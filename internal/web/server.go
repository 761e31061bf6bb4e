// Package web is the server-rendered MedShare front-end. It owns the authToken cookie and
// talks to the backend API on behalf of the browser.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/config"
	"github.com/existflow/medshare/internal/logger"
)

// Server is the web front-end
type Server struct {
	cfg    *config.Config
	api    *api.Client // public client, no token and no 401 policy
	sealer *Sealer
	echo   *echo.Echo
	now    func() time.Time
}

// Option configures a Server
type Option func(*Server)

// WithAPIClient replaces the base API client
func WithAPIClient(c *api.Client) Option {
	return func(s *Server) { s.api = c }
}

// WithClock overrides the clock used for form validation
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the front-end server
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	sealer, err := NewSealer(cfg.Secret)
	if err != nil {
		return nil, err
	}
	if cfg.Secret == "" {
		logger.Warn("MEDSHARE_SECRET is not set; flash cookies use a per-process key")
	}

	s := &Server{
		cfg:    cfg,
		sealer: sealer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.api == nil {
		s.api = api.New(cfg.APIURL)
	}

	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	s.setupEcho(renderer)

	return s, nil
}

func (s *Server) setupEcho(renderer *Renderer) {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = s.handleError

	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.sessionMiddleware)

	e.GET("/health", s.handleHealth)

	// Public pages
	e.GET("/", s.handleHome)
	e.GET("/login", s.handleLoginPage)
	e.POST("/login", s.handleLogin)
	e.GET("/register", s.handleRegisterPage)
	e.POST("/register", s.handleRegister)
	e.GET("/forgot-password", s.handleForgotPage)
	e.POST("/forgot-password", s.handleForgot)
	e.GET("/reset-password/:token", s.handleResetPage)
	e.POST("/reset-password/:token", s.handleReset)
	e.POST("/logout", s.handleLogout)
	e.GET("/perfil-publico/:uuid", s.handlePublicProfilePage)
	e.POST("/perfil-publico/:uuid", s.handlePublicProfile)
	e.GET("/404", s.handleNotFound)

	// Protected pages
	protected := e.Group("")
	protected.Use(s.requireAuth)
	protected.GET("/dashboard", s.handleDashboard)
	protected.GET("/profile", s.handleProfilePage)
	protected.POST("/profile", s.handleProfile)
	protected.POST("/profile/password", s.handlePasswordChange)
	protected.GET("/medical", s.handleMedicalPage)
	protected.POST("/medical", s.handleMedical)
	protected.POST("/medical/clear", s.handleMedicalClear)
	protected.GET("/emergency-contacts", s.handleContactsPage)
	protected.POST("/emergency-contacts", s.handleContactCreate)
	protected.GET("/emergency-contacts/:id/edit", s.handleContactEditPage)
	protected.POST("/emergency-contacts/:id", s.handleContactUpdate)
	protected.GET("/emergency-contacts/:id/delete", s.handleContactDeletePage)
	protected.POST("/emergency-contacts/:id/delete", s.handleContactDelete)
	protected.GET("/public-link", s.handlePublicLinkPage)
	protected.POST("/public-link/enable", s.handlePublicLinkEnable)
	protected.POST("/public-link/password", s.handlePublicLinkPassword)
	protected.POST("/public-link/disable", s.handlePublicLinkDisable)
	protected.GET("/public-link/qr", s.handlePublicLinkQR)
	protected.GET("/settings", s.handleSettingsPage)
	protected.POST("/settings/delete-account", s.handleDeleteAccount)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/404")
	})

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
