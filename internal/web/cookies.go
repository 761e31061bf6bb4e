package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/session"
)

const (
	tokenCookie = "authToken"
	flashCookie = "medshare_flash"
)

// cookieTokenStore keeps the bearer token in the authToken cookie of one request. The
// dashboard fetches run concurrently, so every access holds mu.
type cookieTokenStore struct {
	c      echo.Context
	secure bool

	mu sync.Mutex
	// value written during this request, if any
	set     bool
	current string
}

func newCookieTokenStore(c echo.Context, secure bool) *cookieTokenStore {
	return &cookieTokenStore{c: c, secure: secure}
}

func (t *cookieTokenStore) Token() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.set {
		return t.current, t.current != ""
	}
	ck, err := t.c.Cookie(tokenCookie)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

func (t *cookieTokenStore) SetToken(token string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set, t.current = true, token
	t.c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(session.TokenTTL),
		MaxAge:   int(session.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

func (t *cookieTokenStore) ClearToken() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.set && t.current == "" {
		return nil
	}
	t.set, t.current = true, ""
	t.c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Flash is a message carried across one redirect. Secret holds a password shown once.
type Flash struct {
	Kind    string `json:"k"` // "success" or "error"
	Message string `json:"m"`
	Secret  string `json:"s,omitempty"`
}

func (s *Server) setFlash(c echo.Context, f Flash) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	sealed, err := s.sealer.Seal(data)
	if err != nil {
		logger.Error("Failed to seal flash", logger.F("error", err))
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    sealed,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

// takeFlash reads and deletes the flash cookie
func (s *Server) takeFlash(c echo.Context) *Flash {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})

	data, err := s.sealer.Open(ck.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}
