package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelancehub/marketplace/internal/core/domain"
	"github.com/freelancehub/marketplace/internal/core/ports"
)

const defaultFreelancerTitle = "Freelancer"

// AuthService implements registration, login, logout, and session
// verification on top of the user/profile/session repositories, with a
// cache in front of verification.
type AuthService struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	sessions ports.SessionRepository
	cache    ports.SessionCache
	log      zerolog.Logger
	nowFunc  func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	sessions ports.SessionRepository,
	cache ports.SessionCache,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		cache:    cache,
		log:      log,
		nowFunc:  time.Now,
	}
}

// Register creates a user, its per-type profile, and an initial session.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	for _, f := range []struct{ name, value string }{
		{"email", input.Email},
		{"password", input.Password},
		{"userType", input.UserType},
		{"firstName", input.FirstName},
		{"lastName", input.LastName},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, "", &domain.MissingFieldError{Field: f.name}
		}
	}

	if !domain.ValidUserType(input.UserType) {
		return nil, "", domain.ErrInvalidUserType
	}
	if len(input.Password) < 6 {
		return nil, "", domain.ErrPasswordTooShort
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		UserType:     input.UserType,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.nowFunc().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = defaultFreelancerTitle
	}
	profileID, err := s.profiles.Create(ctx, created.ID, created.UserType, title)
	if err != nil {
		return nil, "", fmt.Errorf("create profile: %w", err)
	}
	created.ProfileID = &profileID

	token, err := s.issueSession(ctx, created.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int("user_id", created.ID).Str("user_type", created.UserType).Msg("user registered")
	return created, token, nil
}

// Login authenticates by email and password and issues a fresh session.
// Unknown email, inactive account, and wrong password are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive || !VerifyPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	if profileID, err := s.profiles.FindByUser(ctx, user.ID, user.UserType); err == nil {
		user.ProfileID = &profileID
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// Logout expires the session row and drops the cache entry. A token that
// never existed is not an error; the outcome the client needs is the same.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	if err := s.cache.Delete(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session cache delete failed")
	}

	if err := s.sessions.Expire(ctx, token, s.nowFunc().UTC()); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Verify resolves a session token to its active user. The cache is
// consulted first; a miss falls through to the session store and primes the
// cache with the remaining session lifetime.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	now := s.nowFunc().UTC()

	userID, hit, err := s.cache.Get(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("session cache read failed, falling back to store")
		hit = false
	}

	if !hit {
		session, err := s.sessions.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil, domain.ErrSessionInvalid
			}
			return nil, err
		}
		if session.Expired(now) {
			return nil, domain.ErrSessionInvalid
		}
		userID = session.UserID

		if err := s.cache.Put(ctx, token, userID, session.ExpiresAt.Sub(now)); err != nil {
			s.log.Warn().Err(err).Msg("session cache write failed")
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrSessionInvalid
	}

	if profileID, err := s.profiles.FindByUser(ctx, user.ID, user.UserType); err == nil {
		user.ProfileID = &profileID
	}
	return user, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID int) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", err
	}

	now := s.nowFunc().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.SessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}
