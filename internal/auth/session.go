package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/cineia/cinex/internal/shared"
)

// State enumerates the session states.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return ""
	}
}

// Snapshot is a consistent view of the current session published to
// subscribers. Authenticated is never true while Identity is nil.
type Snapshot struct {
	Identity      *Identity
	Authenticated bool
}

// Session holds the process-wide identity state with explicit login, logout,
// and resume transitions. It owns the Identity lifecycle; consumers read
// snapshots and subscribe to transitions.
type Session struct {
	mu       sync.RWMutex
	state    State
	identity *Identity
	creds    *CredentialStore
	subs     []func(Snapshot)
	now      func() time.Time
}

// NewSession creates an anonymous session backed by the given credential store.
func NewSession(creds *CredentialStore) *Session {
	return &Session{
		state: Anonymous,
		creds: creds,
		now:   time.Now,
	}
}

// Login transitions the session to Authenticated with the given identity and
// persists the credential.
func (s *Session) Login(identity *Identity) error {
	if identity == nil || identity.Token == "" {
		return shared.ErrInvalidInput
	}

	s.mu.Lock()
	s.state = Authenticated
	s.identity = identity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.creds.Save(identity.Token); err != nil {
		return err
	}

	s.notify(snap)
	return nil
}

// Logout transitions to Anonymous and deletes the stored credential.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.state = Anonymous
	s.identity = nil
	snap := s.snapshotLocked()
	s.mu.Unlock()

	err := s.creds.Clear()
	s.notify(snap)
	return err
}

// Resume restores the session from the stored credential on startup.
//
// A present, unexpired credential with a derivable identity transitions to
// Authenticated. An expired credential is deleted and the session stays
// Anonymous. A malformed or foreign credential silently leaves the session
// Anonymous; no error surfaces to the user.
func (s *Session) Resume() error {
	token, err := s.creds.Load()
	if err != nil {
		if errors.Is(err, shared.ErrTokenExpired) {
			s.creds.Clear()
			return nil
		}
		if errors.Is(err, shared.ErrNoCredential) {
			return nil
		}
		return err
	}

	claims, err := Decode(token)
	if err != nil {
		return nil
	}

	if claims.Expired(s.now()) {
		s.creds.Clear()
		return nil
	}

	identity := DeriveIdentity(claims, token)
	if identity == nil {
		return nil
	}

	s.mu.Lock()
	s.state = Authenticated
	s.identity = identity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Snapshot returns the current session view atomically.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// IsAuthenticated reports whether the session holds a valid identity.
func (s *Session) IsAuthenticated() bool {
	return s.Snapshot().Authenticated
}

// Identity returns the current identity, or nil when anonymous.
func (s *Session) Identity() *Identity {
	return s.Snapshot().Identity
}

// Token returns the bearer credential for identity-dependent calls.
//
// Returns [shared.ErrLoginRequired] when the session is anonymous, so
// callers can refuse the operation before touching the network.
func (s *Session) Token() (string, error) {
	snap := s.Snapshot()
	if !snap.Authenticated {
		return "", shared.ErrLoginRequired
	}
	return snap.Identity.Token, nil
}

// Subscribe registers fn to receive a snapshot on every transition.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subs[idx] = nil
		s.mu.Unlock()
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Identity:      s.identity,
		Authenticated: s.state == Authenticated && s.identity != nil,
	}
}

func (s *Session) notify(snap Snapshot) {
	s.mu.RLock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		if fn != nil {
			fn(snap)
		}
	}
}
