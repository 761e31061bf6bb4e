package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/medshare/internal/api"
	"github.com/existflow/medshare/internal/config"
	"github.com/existflow/medshare/internal/db"
	"github.com/existflow/medshare/internal/forms"
	"github.com/existflow/medshare/internal/guard"
	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/session"
)

var errNotLoggedIn = errors.New("not logged in, run 'medshare auth login' first")

// openDB opens the credential database
var openDB = db.OpenDefault

// app is what every command works with: one session per process
type app struct {
	cfg    *config.Config
	db     *db.DB
	tokens session.TokenStore

	// client carries the stored token, public never does
	client *api.Client
	public *api.Client
	store  *session.Store

	in  *bufio.Reader
	raw io.Reader
	out io.Writer
}

// open wires the session for the loaded configuration
func (a *app) open(cfg *config.Config, in io.Reader, out io.Writer) error {
	database, err := openDB()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	a.cfg = cfg
	a.db = database
	a.tokens = database.Credentials(cfg.APIURL)
	a.raw = in
	a.in = bufio.NewReader(in)
	a.out = out

	a.public = api.New(cfg.APIURL)
	a.client = a.public.With(
		api.WithTokenSource(a.tokens),
		api.WithUnauthorizedHandler(func(ctx context.Context) {
			if err := a.tokens.ClearToken(); err != nil {
				logger.Warn("Failed to clear rejected token", logger.F("error", err))
			}
		}),
	)
	a.store = session.NewStore(a.client, a.tokens)
	return nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

// requireAuth resolves the stored session and applies the route guard
func (a *app) requireAuth(ctx context.Context) error {
	a.store.Bootstrap(ctx)
	if guard.Decide(a.store.Snapshot()) != guard.RenderContent {
		return errNotLoggedIn
	}
	return nil
}

// fail turns an API error into a command error. A rejected token also ends the session.
func (a *app) fail(action string, err error) error {
	if api.IsUnauthorized(err) {
		a.store.Logout()
		return fmt.Errorf("%s: session expired, run 'medshare auth login'", action)
	}
	return fmt.Errorf("%s: %s", action, api.Message(err))
}

func (a *app) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) success(msg string) {
	a.println(successStyle.Render("✅ " + msg))
}

// field prints one aligned label/value line, "-" for empty values
func (a *app) field(label, value string) {
	if value == "" {
		value = mutedStyle.Render("-")
	}
	a.println(labelStyle.Render(label) + value)
}

// anyChanged reports whether any of the named flags was set
func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// formErrors reports validation errors in field order
func formErrors(errs forms.Errors) error {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+k+": "+errs[k])
	}
	return fmt.Errorf("invalid input:\n%s", strings.Join(lines, "\n"))
}

// prompt reads one line
func (a *app) prompt(label string) string {
	a.printf("%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// promptDefault reads one line, keeping current when the answer is empty
func (a *app) promptDefault(label, current string) string {
	if current != "" {
		label += " [" + current + "]"
	}
	if v := a.prompt(label); v != "" {
		return v
	}
	return current
}

// password reads a line without echo when stdin is a terminal
func (a *app) password(label string) string {
	if f, ok := a.raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.printf("%s: ", label)
		b, _ := term.ReadPassword(int(f.Fd()))
		a.println()
		return string(b)
	}
	a.printf("%s: ", label)
	line, _ := a.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// confirm asks a y/N question
func (a *app) confirm(question string) bool {
	a.printf("%s [y/N]: ", question)
	line, _ := a.in.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// confirmDestructive honors --yes and the confirm_delete setting
func (a *app) confirmDestructive(yes bool, question string) bool {
	if yes || !a.cfg.ConfirmDelete {
		return true
	}
	return a.confirm(question)
}
