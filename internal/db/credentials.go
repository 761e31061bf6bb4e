package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/medshare/internal/logger"
	"github.com/existflow/medshare/internal/session"
)

// CredentialStore is a session.TokenStore backed by the credentials table. Tokens are keyed
// by API base URL and expire after session.TokenTTL.
type CredentialStore struct {
	db     *DB
	apiURL string
	now    func() time.Time
}

var _ session.TokenStore = (*CredentialStore)(nil)

// Credentials returns the token store for one API base URL
func (db *DB) Credentials(apiURL string) *CredentialStore {
	return &CredentialStore{db: db, apiURL: apiURL, now: time.Now}
}

// WithClock replaces the store's clock
func (s *CredentialStore) WithClock(now func() time.Time) *CredentialStore {
	s.now = now
	return s
}

// Token returns the stored token. An expired row is removed.
func (s *CredentialStore) Token() (string, bool) {
	var token, expires string
	err := s.db.QueryRow(
		`SELECT token, expires_at FROM credentials WHERE api_url = ?`, s.apiURL,
	).Scan(&token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		logger.Error("Failed to read credentials", logger.F("error", err))
		return "", false
	}

	exp, err := time.Parse(time.RFC3339, expires)
	if err != nil || !s.now().Before(exp) {
		if cerr := s.ClearToken(); cerr != nil {
			logger.Warn("Failed to remove expired credentials", logger.F("error", cerr))
		}
		return "", false
	}
	return token, token != ""
}

func (s *CredentialStore) SetToken(token string) error {
	now := s.now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO credentials (api_url, token, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(api_url) DO UPDATE SET
			token = excluded.token,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		s.apiURL, token, now.Format(time.RFC3339), now.Add(session.TokenTTL).Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func (s *CredentialStore) ClearToken() error {
	if _, err := s.db.Exec(`DELETE FROM credentials WHERE api_url = ?`, s.apiURL); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// ExpiresAt reports when the stored token expires
func (s *CredentialStore) ExpiresAt() (time.Time, bool) {
	var expires string
	err := s.db.QueryRow(`SELECT expires_at FROM credentials WHERE api_url = ?`, s.apiURL).Scan(&expires)
	if err != nil {
		return time.Time{}, false
	}
	exp, err := time.Parse(time.RFC3339, expires)
	return exp, err == nil
}
