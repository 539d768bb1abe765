// Package session owns the persisted bearer credential and the
// authenticated/unauthenticated state derived from it. A single Store
// is constructed at startup and passed to whatever needs the current
// identity; nothing else touches the token slot.
package session

import (
	"context"
	"log"
	"strings"
	"sync"

	models "github.com/swiftbus/api/internal"
	"github.com/swiftbus/api/internal/ports"
)

// fallbackUsername is used when the profile response carries no username.
const fallbackUsername = "User"

type State string

const (
	Unauthenticated State = "unauthenticated"
	Hydrating       State = "hydrating"
	Authenticated   State = "authenticated"
)

type Store struct {
	mu     sync.Mutex
	tokens ports.TokenStore
	auth   ports.AuthAPI

	token    string
	username string
	profile  *models.Profile

	// hydratedToken marks the last token a hydration ran for, so a
	// hydration fires at most once per distinct token no matter how
	// often Hydrate is called.
	hydratedToken string
	closed        bool
}

func NewStore(tokens ports.TokenStore, auth ports.AuthAPI) *Store {
	return &Store{tokens: tokens, auth: auth}
}

// Hydrate resolves the persisted token into a user identity. It is a
// no-op when no token is stored, when a username is already resolved
// for the current token, or when a hydration already ran for it. A
// failed fetch clears both the slot and the in-memory state and is
// swallowed; the only observable outcome is the unauthenticated state.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.token == "" {
		stored, err := s.tokens.Load()
		if err != nil {
			log.Printf("session: reading token slot: %v", err)
			s.mu.Unlock()
			return
		}
		if stored == "" {
			s.mu.Unlock()
			return
		}
		s.token = stored
	}
	token := s.token
	if s.username != "" || s.hydratedToken == token {
		s.mu.Unlock()
		return
	}
	s.hydratedToken = token
	s.mu.Unlock()

	profile, err := s.auth.FetchUser(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.token != token {
		// the store was torn down or the token changed mid-flight;
		// discard the stale result
		return
	}
	if err != nil {
		log.Printf("session: fetching user info: %v", err)
		s.clearLocked()
		return
	}
	username := strings.TrimSpace(profile.Username)
	if username == "" {
		username = fallbackUsername
	}
	s.username = username
	s.profile = profile
}

// Login persists the token and applies the identity directly. The
// caller is trusted to have validated the credential already, so no
// verification round-trip happens here.
func (s *Store) Login(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := s.tokens.Save(token); err != nil {
		log.Printf("session: persisting token: %v", err)
	}
	s.token = token
	s.username = username
	s.profile = &models.Profile{Username: username}
	s.hydratedToken = token
}

func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// IsAuthenticated reports whether a token is present. It is true while
// a hydration for that token is still outstanding, matching the
// token-presence semantics of the persisted slot.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer credential, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Store) Username() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.username != ""
}

// Profile returns a copy of the resolved identity for contact prefill,
// or nil before hydration completes.
func (s *Store) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.token == "":
		return Unauthenticated
	case s.username == "":
		return Hydrating
	default:
		return Authenticated
	}
}

// Close marks the store defunct. Hydration results arriving after Close
// are discarded rather than applied.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) clearLocked() {
	if err := s.tokens.Clear(); err != nil {
		log.Printf("session: clearing token slot: %v", err)
	}
	s.token = ""
	s.username = ""
	s.profile = nil
}
