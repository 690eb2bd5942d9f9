package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cineia/cinex/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultCredentialTTL is the lifetime of a stored credential, mirroring the
// 12 hour cookie expiry the API's web client uses.
const DefaultCredentialTTL = 12 * time.Hour

// cookieName is the persisted cookie's name.
const cookieName = "token"

// storedCookie is the on-disk representation of the credential cookie,
// including the transport-security flags the web client sets.
type storedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure"`
	SameSite string    `json:"same_site"`
}

// CredentialStore persists the bearer credential as a single cookie record
// under the cinex state directory.
type CredentialStore struct {
	path string
	ttl  time.Duration
	now  func() time.Time
}

// NewCredentialStore creates a store writing to dir/cookie.json.
// A zero ttl falls back to [DefaultCredentialTTL].
func NewCredentialStore(dir string, ttl time.Duration) *CredentialStore {
	if ttl <= 0 {
		ttl = DefaultCredentialTTL
	}
	return &CredentialStore{
		path: filepath.Join(dir, "cookie.json"),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Save writes the credential with a fresh expiry and the fixed security flags.
func (s *CredentialStore) Save(token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidInput)
	}

	record := storedCookie{
		Name:     cookieName,
		Value:    token,
		Expires:  s.now().Add(s.ttl),
		Secure:   true,
		SameSite: "Strict",
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}

	return nil
}

// Load reads the stored credential value.
//
// Returns [shared.ErrNoCredential] when nothing is stored and
// [shared.ErrTokenExpired] when the cookie record itself has lapsed.
// Callers still validate the embedded expiry claim via the token codec.
func (s *CredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", shared.ErrNoCredential
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}

	var record storedCookie
	if err := json.Unmarshal(data, &record); err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrMalformedToken, err)
	}

	if record.Value == "" {
		return "", shared.ErrNoCredential
	}

	if !record.Expires.IsZero() && record.Expires.Before(s.now()) {
		return "", shared.ErrTokenExpired
	}

	return record.Value, nil
}

// Clear deletes the stored credential. Missing files are not an error.
func (s *CredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

// Cookie returns the stored credential as an [http.Cookie] with the flags it
// was persisted with, or nil when nothing valid is stored.
func (s *CredentialStore) Cookie() *http.Cookie {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var record storedCookie
	if err := json.Unmarshal(data, &record); err != nil {
		return nil
	}

	return &http.Cookie{
		Name:     record.Name,
		Value:    record.Value,
		Expires:  record.Expires,
		Secure:   record.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// TokenSource wraps the given credential in an [oauth2.TokenSource] so HTTP
// clients attach it as a bearer token.
func TokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
