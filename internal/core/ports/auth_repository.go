package ports

import (
	"context"
	"time"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ProfileRepository creates and resolves the per-type profile rows that back
// User.ProfileID. Which collection a call hits is decided by userType.
type ProfileRepository interface {
	Create(ctx context.Context, userID int, userType, title string) (int, error)
	FindByUser(ctx context.Context, userID int, userType string) (int, error)
}

// SessionRepository defines the interface for session token persistence.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	Expire(ctx context.Context, token string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
