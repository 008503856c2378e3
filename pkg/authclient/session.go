package authclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// TokenStore persists the session token between runs. Load returns an
// empty string when no token has been saved.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// SessionStore holds the signed-in user for the lifetime of the process
// and keeps the token in sync with a TokenStore.
type SessionStore struct {
	api    API
	tokens TokenStore
	log    zerolog.Logger

	mu       sync.Mutex
	hydrated bool
	user     *User
	token    string
}

func NewSessionStore(api API, tokens TokenStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{api: api, tokens: tokens, log: log}
}

// Hydrate restores the session from a previously saved token. It runs at
// most once; later calls return immediately. Any verification failure
// clears the saved token and leaves the user signed out; a half-valid
// session never survives startup.
func (s *SessionStore) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	s.mu.Unlock()

	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read saved session token")
		return
	}
	if token == "" {
		return
	}

	user, err := s.api.VerifySession(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Msg("saved session not restored, clearing token")
		if cerr := s.tokens.Clear(); cerr != nil {
			s.log.Warn().Err(cerr).Msg("could not clear saved session token")
		}
		return
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	s.log.Info().Str("email", user.Email).Msg("session restored")
}

// SetSession installs credentials from a successful login or
// registration and persists the token.
func (s *SessionStore) SetSession(creds Credentials) {
	if creds.SessionToken == "" {
		return
	}
	user := creds.User
	s.mu.Lock()
	s.user = &user
	s.token = creds.SessionToken
	s.mu.Unlock()

	if err := s.tokens.Save(creds.SessionToken); err != nil {
		s.log.Warn().Err(err).Msg("could not persist session token")
	}
}

// ClearSession drops the in-memory session and the saved token. Safe to
// call when no session is active.
func (s *SessionStore) ClearSession() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("could not clear saved session token")
	}
}

// Logout tells the server to invalidate the session, then clears local
// state regardless of whether the server call succeeded.
func (s *SessionStore) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.api.Logout(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
		}
	}
	s.ClearSession()
}

// Current returns the signed-in user, or nil when signed out.
func (s *SessionStore) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the active session token, or an empty string.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SignedIn reports whether a session is active.
func (s *SessionStore) SignedIn() bool {
	return s.Current() != nil
}
