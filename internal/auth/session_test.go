package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cineia/cinex/internal/shared"
	tu "github.com/cineia/cinex/internal/testing"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(t.TempDir(), 0)
}

func TestSession(t *testing.T) {
	t.Run("initial state is anonymous", func(t *testing.T) {
		session := NewSession(newTestStore(t))

		snap := session.Snapshot()
		if snap.Authenticated {
			t.Error("expected new session to be anonymous")
		}
		if snap.Identity != nil {
			t.Error("expected nil identity for anonymous session")
		}
	})

	t.Run("login then logout returns to anonymous with no stored credential", func(t *testing.T) {
		store := newTestStore(t)
		session := NewSession(store)

		token := tu.ForgeToken("a@b.com", 7, time.Now().Add(time.Hour))
		claims, err := Decode(token)
		if err != nil {
			t.Fatalf("failed to decode token: %v", err)
		}

		if err := session.Login(DeriveIdentity(claims, token)); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if !session.IsAuthenticated() {
			t.Fatal("expected authenticated session after login")
		}
		if _, err := store.Load(); err != nil {
			t.Fatalf("expected stored credential after login: %v", err)
		}

		if err := session.Logout(); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		if session.IsAuthenticated() {
			t.Error("expected anonymous session after logout")
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNoCredential) {
			t.Errorf("expected no stored credential after logout, got %v", err)
		}
	})

	t.Run("resume with valid credential authenticates", func(t *testing.T) {
		store := newTestStore(t)
		token := tu.ForgeToken("a@b.com", 7, time.Now().Add(time.Hour))
		if err := store.Save(token); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		session := NewSession(store)
		if err := session.Resume(); err != nil {
			t.Fatalf("resume failed: %v", err)
		}

		snap := session.Snapshot()
		if !snap.Authenticated {
			t.Fatal("expected authenticated session after resume")
		}
		if snap.Identity.Username != "a" || snap.Identity.UserID != 7 {
			t.Errorf("unexpected identity: %+v", snap.Identity)
		}
	})

	t.Run("resume with expired credential stays anonymous and deletes it", func(t *testing.T) {
		store := newTestStore(t)
		token := tu.ForgeToken("a@b.com", 7, time.Now().Add(-time.Hour))
		if err := store.Save(token); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		session := NewSession(store)
		if err := session.Resume(); err != nil {
			t.Fatalf("resume failed: %v", err)
		}

		if session.IsAuthenticated() {
			t.Error("expected anonymous session for expired credential")
		}
		if _, err := store.Load(); !errors.Is(err, shared.ErrNoCredential) {
			t.Errorf("expected expired credential to be removed, got %v", err)
		}
	})

	t.Run("resume with foreign token stays anonymous", func(t *testing.T) {
		store := newTestStore(t)
		// Token without an email claim is treated as corrupt/foreign.
		token := tu.ForgeToken("", 7, time.Now().Add(time.Hour))
		if err := store.Save(token); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		session := NewSession(store)
		if err := session.Resume(); err != nil {
			t.Fatalf("resume failed: %v", err)
		}

		if session.IsAuthenticated() {
			t.Error("expected anonymous session for token without email")
		}
	})

	t.Run("resume with malformed token stays anonymous without error", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.Save("not-a-jwt"); err != nil {
			t.Fatalf("failed to save credential: %v", err)
		}

		session := NewSession(store)
		if err := session.Resume(); err != nil {
			t.Fatalf("malformed credential should demote silently, got %v", err)
		}
		if session.IsAuthenticated() {
			t.Error("expected anonymous session for malformed credential")
		}
	})

	t.Run("token refuses anonymous callers", func(t *testing.T) {
		session := NewSession(newTestStore(t))

		if _, err := session.Token(); !errors.Is(err, shared.ErrLoginRequired) {
			t.Errorf("expected ErrLoginRequired, got %v", err)
		}
	})

	t.Run("subscribers observe consistent snapshots", func(t *testing.T) {
		store := newTestStore(t)
		session := NewSession(store)

		var seen []Snapshot
		session.Subscribe(func(snap Snapshot) {
			seen = append(seen, snap)
		})

		token := tu.ForgeToken("sub@example.com", 3, time.Now().Add(time.Hour))
		claims, _ := Decode(token)
		if err := session.Login(DeriveIdentity(claims, token)); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if err := session.Logout(); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		if len(seen) != 2 {
			t.Fatalf("expected 2 notifications, got %d", len(seen))
		}
		for _, snap := range seen {
			if snap.Authenticated && snap.Identity == nil {
				t.Error("snapshot reports authenticated with nil identity")
			}
		}
		if !seen[0].Authenticated || seen[1].Authenticated {
			t.Error("expected login then logout transition order")
		}
	})
}

func TestCredentialStore(t *testing.T) {
	t.Run("save and load round trip", func(t *testing.T) {
		store := newTestStore(t)

		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if got != "tok-123" {
			t.Errorf("expected tok-123, got %s", got)
		}
	})

	t.Run("cookie carries security flags", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		cookie := store.Cookie()
		if cookie == nil {
			t.Fatal("expected cookie")
		}
		if cookie.Name != "token" {
			t.Errorf("expected cookie name token, got %s", cookie.Name)
		}
		if !cookie.Secure {
			t.Error("expected Secure flag")
		}
		if cookie.Expires.Before(time.Now().Add(11 * time.Hour)) {
			t.Error("expected ~12h expiry")
		}
	})

	t.Run("expired record reports ErrTokenExpired", func(t *testing.T) {
		store := newTestStore(t)
		store.now = func() time.Time { return time.Now().Add(-24 * time.Hour) }
		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		store.now = time.Now

		if _, err := store.Load(); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("credential file has restricted permissions", func(t *testing.T) {
		dir := t.TempDir()
		store := NewCredentialStore(dir, 0)
		if err := store.Save("tok-123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		info, err := os.Stat(filepath.Join(dir, "cookie.json"))
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected 0600 permissions, got %o", perm)
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.Clear(); err != nil {
			t.Errorf("clearing an empty store should succeed: %v", err)
		}
	})

	t.Run("empty token rejected", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.Save(""); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
