package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/medshare/internal/model"
)

const (
	testToken  = "tok-cli"
	testLinkID = "0b7e1c9a-6f2d-4f8e-9a51-3c2d1e0f4a5b"
)

type fakeAPI struct {
	mu       sync.Mutex
	calls    map[string]int
	revoked  bool
	contacts []model.EmergencyContact
	linkPass string
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeAPI) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func newFakeAPI(t *testing.T) (*fakeAPI, string) {
	t.Helper()
	f := &fakeAPI{
		calls:    map[string]int{},
		contacts: []model.EmergencyContact{{ID: 7, Name: "Maria", Relationship: "Mãe", Phone: "(11) 98765-4321"}},
	}
	user := model.User{ID: 1, Email: "ana@example.com", Name: "Ana", Surname: "Souza"}

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			f.mu.Lock()
			f.calls[c.Request().Method+" "+c.Path()]++
			f.mu.Unlock()
			return next(c)
		}
	})
	ok := func(c echo.Context, data interface{}) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": data})
	}
	authed := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			f.mu.Lock()
			revoked := f.revoked
			f.mu.Unlock()
			if revoked || c.Request().Header.Get("Authorization") != "Bearer "+testToken {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid token"})
			}
			return next(c)
		}
	}

	e.POST("/auth/login", func(c echo.Context) error {
		var creds model.Credentials
		if err := c.Bind(&creds); err != nil {
			return err
		}
		if creds.Password != "secret1" {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Invalid credentials"})
		}
		return ok(c, map[string]interface{}{"token": testToken, "user": user})
	})
	e.GET("/users/profile", func(c echo.Context) error { return ok(c, user) }, authed)
	e.PUT("/users/profile", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": "Perfil atualizado"})
	}, authed)
	e.GET("/emergency-contacts", func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		return ok(c, f.contacts)
	}, authed)
	e.GET("/emergency-contacts/:id", func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, ct := range f.contacts {
			if c.Param("id") == "7" && ct.ID == 7 {
				return ok(c, ct)
			}
		}
		return c.JSON(http.StatusNotFound, map[string]interface{}{"success": false, "message": "Contato não encontrado"})
	}, authed)
	e.DELETE("/emergency-contacts/:id", func(c echo.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.contacts = nil
		return ok(c, nil)
	}, authed)
	e.POST("/users/generate-public-link", func(c echo.Context) error {
		var body map[string]string
		if err := c.Bind(&body); err != nil {
			return err
		}
		f.mu.Lock()
		f.linkPass = body["senha_acesso_publico"]
		f.mu.Unlock()
		return ok(c, model.GeneratedLink{LinkID: testLinkID, LinkURL: "http://localhost:3000/perfil-publico/" + testLinkID})
	}, authed)
	e.GET("/public/check/:uuid", func(c echo.Context) error {
		return ok(c, model.PublicLinkCheck{Exists: c.Param("uuid") == testLinkID, OwnerName: "Ana Souza", HasPassword: true})
	})
	e.POST("/public/profile/:uuid", func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "Senha incorreta"})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

// setupEnv points config, credentials and logs at a temporary home
func setupEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MEDSHARE_API_URL", apiURL)
	t.Setenv("MEDSHARE_CONFIRM_DELETE", "true")
}

func run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func login(t *testing.T) {
	t.Helper()
	out, err := run("ana@example.com\nsecret1\n", "auth", "login")
	require.NoError(t, err, out)
}

func TestAuthLoginPersistsToken(t *testing.T) {
	_, url := newFakeAPI(t)
	setupEnv(t, url)

	out, err := run("ana@example.com\nsecret1\n", "auth", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Ana Souza")

	// A new process finds the stored token
	out, err = run("", "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "Session expires")

	_, err = run("", "auth", "logout")
	require.NoError(t, err)

	out, err = run("", "auth", "status")
	require.NoError(t, err)
	assert.NotContains(t, out, "ana@example.com")
}

func TestAuthLoginRejected(t *testing.T) {
	_, url := newFakeAPI(t)
	setupEnv(t, url)

	_, err := run("", "auth", "login", "--email", "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Password must be at least 6 characters")

	_, err = run("wrong-password\n", "auth", "login", "--email", "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestRegisterMismatchSendsNothing(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)

	stdin := strings.Join([]string{"Ana", "Souza", "ana@example.com", "Segura123", "Segura124", "", "", "", "y"}, "\n") + "\n"
	_, err := run(stdin, "auth", "register")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Passwords do not match")
	assert.Zero(t, api.total())
}

func TestCommandsRequireLogin(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)

	for _, args := range [][]string{{"contacts"}, {"medical"}, {"profile"}, {"link"}, {"dashboard"}} {
		_, err := run("", args...)
		assert.ErrorIs(t, err, errNotLoggedIn, args)
	}
	assert.Zero(t, api.total())
}

func TestContactsDeleteConfirmation(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	out, err := run("n\n", "contacts", "delete", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Zero(t, api.count("DELETE /emergency-contacts/:id"))

	out, err = run("", "contacts")
	require.NoError(t, err)
	assert.Contains(t, out, "Maria")

	_, err = run("", "contacts", "delete", "7", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("DELETE /emergency-contacts/:id"))

	_, err = run("", "contacts", "delete", "abc")
	assert.Error(t, err)
}

func TestContactsAddValidation(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	_, err := run("", "contacts", "add", "--name", "M", "--relationship", "Mãe", "--phone", "1234")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name must have at least 2 characters")
	assert.Contains(t, err.Error(), "Phone must have at least 10 digits")
	assert.Zero(t, api.count("POST /emergency-contacts"))
}

func TestLinkEnablePrintsPasswordOnce(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	out, err := run("", "link", "enable")
	require.NoError(t, err)

	api.mu.Lock()
	pass := api.linkPass
	api.mu.Unlock()
	require.Len(t, pass, 12)
	assert.Equal(t, 1, strings.Count(out, pass))
	assert.Contains(t, out, "It will not be shown again")
}

func TestLinkPasswordPolicy(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	_, err := run("", "link", "password", "--password", "abc")

	require.Error(t, err)
	assert.Zero(t, api.count("POST /users/generate-public-link"))
}

func TestRevokedTokenEndsSession(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	api.mu.Lock()
	api.revoked = true
	api.mu.Unlock()

	_, err := run("", "contacts")
	require.Error(t, err)

	api.mu.Lock()
	api.revoked = false
	api.mu.Unlock()

	// The rejected token was removed from the credential store
	_, err = run("", "contacts")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestProfileUpdateWithoutDataKeepsUser(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)
	login(t)

	out, err := run("", "profile", "update", "--phone", "(11) 98765-4321")

	require.NoError(t, err, out)
	assert.Equal(t, 1, api.count("PUT /users/profile"))
	assert.Contains(t, out, "Profile updated successfully")
	assert.Contains(t, out, "Ana Souza")
}

func TestPublicView(t *testing.T) {
	api, url := newFakeAPI(t)
	setupEnv(t, url)

	_, err := run("", "public", "view", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link not found")
	assert.Zero(t, api.total())

	out, err := run("", "public", "check", testLinkID)
	require.NoError(t, err)
	assert.Contains(t, out, "Ana Souza")

	_, err = run("", "public", "view", testLinkID, "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid link or password.", err.Error())
}
