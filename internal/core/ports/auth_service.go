package ports

import (
	"context"
	"time"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// RegisterInput carries everything the registration flow needs. Title is only
// consulted for freelancer accounts; empty means the default title.
type RegisterInput struct {
	Email     string
	Password  string
	UserType  string
	FirstName string
	LastName  string
	Title     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// SessionCache is the fast path consulted by Verify before hitting the
// session store. Misses are not errors; a nil cache is never passed in.
type SessionCache interface {
	Get(ctx context.Context, token string) (int, bool, error)
	Put(ctx context.Context, token string, userID int, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}
