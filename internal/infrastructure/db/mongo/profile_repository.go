package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/marketplace/internal/core/domain"
)

const (
	clientProfilesCollection     = "client_profiles"
	freelancerProfilesCollection = "freelancer_profiles"
)

// MongoProfileRepository stores client and freelancer profiles in separate
// collections, mirroring the two profile tables the rest of the marketplace
// reads from. Only freelancer profiles carry a title.
type MongoProfileRepository struct {
	db *mongo.Database
}

func NewProfileRepository(db *mongo.Database) *MongoProfileRepository {
	return &MongoProfileRepository{db: db}
}

type mongoProfile struct {
	ID        int    `bson:"_id"`
	UserID    int    `bson:"user_id"`
	Title     string `bson:"title,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func collectionFor(userType string) (string, error) {
	switch userType {
	case domain.UserTypeClient:
		return clientProfilesCollection, nil
	case domain.UserTypeFreelancer:
		return freelancerProfilesCollection, nil
	default:
		return "", domain.ErrInvalidUserType
	}
}

func (r *MongoProfileRepository) Create(ctx context.Context, userID int, userType, title string) (int, error) {
	coll, err := collectionFor(userType)
	if err != nil {
		return 0, err
	}

	id, err := nextSequence(ctx, r.db, coll)
	if err != nil {
		return 0, err
	}

	doc := mongoProfile{
		ID:        id,
		UserID:    userID,
		CreatedAt: time.Now().UTC().Unix(),
	}
	if userType == domain.UserTypeFreelancer {
		doc.Title = title
	}

	if _, err := r.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("insert %s: %w", coll, err)
	}
	return id, nil
}

func (r *MongoProfileRepository) FindByUser(ctx context.Context, userID int, userType string) (int, error) {
	coll, err := collectionFor(userType)
	if err != nil {
		return 0, err
	}

	var doc mongoProfile
	if err := r.db.Collection(coll).FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("find %s: %w", coll, err)
	}
	return doc.ID, nil
}
