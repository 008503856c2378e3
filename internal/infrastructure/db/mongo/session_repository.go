package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

const sessionsCollection = "user_sessions"

type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoSession struct {
	ID        string    `bson:"_id"`
	UserID    int       `bson:"user_id"`
	Token     string    `bson:"token"`
	CreatedAt time.Time `bson:"created_at"`
	ExpiresAt time.Time `bson:"expires_at"`
}

func (r *MongoSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	doc := mongoSession{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}

	return &domain.Session{
		ID:        ms.ID,
		UserID:    ms.UserID,
		Token:     ms.Token,
		CreatedAt: ms.CreatedAt.UTC(),
		ExpiresAt: ms.ExpiresAt.UTC(),
	}, nil
}

// Expire invalidates a session by moving its expiry into the past rather
// than deleting the row, so the auth history stays queryable.
func (r *MongoSessionRepository) Expire(ctx context.Context, token string, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"token": token}, bson.M{"$set": bson.M{"expires_at": at}})
	if err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes session rows whose expiry is before the cutoff.
// Called periodically by the session reaper.
func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}
