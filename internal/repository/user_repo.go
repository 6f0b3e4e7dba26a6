package repository

import (
	"context"
	"errors"
	"time"

	"fitvision-backend/internal/database"
	"fitvision-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UserRepo implements models.UserStore on a MongoDB collection keyed by
// email. All token mutations are single-document updates; the conditional
// FindOneAndUpdate calls are what make rotation and redemption race-safe.
type UserRepo struct {
	collection *mongo.Collection
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		collection: database.GetCollection("users"),
	}
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// The unique email index is the authoritative duplicate check.
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrEmailAlreadyRegistered
		}
		return err
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (r *UserRepo) RecordLogin(ctx context.Context, email, refreshDigest string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"refresh_token_hash": refreshDigest,
			"last_login":         at,
		},
	})
	return err
}

func (r *UserRepo) SwapRefreshToken(ctx context.Context, currentDigest, newDigest string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"refresh_token_hash": currentDigest},
		bson.M{"$set": bson.M{"refresh_token_hash": newDigest}},
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ClearRefreshToken(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$unset": bson.M{"refresh_token_hash": ""},
	})
	return err
}

func (r *UserRepo) SetResetToken(ctx context.Context, email, digest string, expires time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"reset_password_token":   digest,
			"reset_password_expires": expires,
		},
	})
	return err
}

func (r *UserRepo) RedeemResetToken(ctx context.Context, digest, newPasswordHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{
			"reset_password_token":   digest,
			"reset_password_expires": bson.M{"$gt": now},
		},
		bson.M{
			"$set": bson.M{"password_hash": newPasswordHash},
			"$unset": bson.M{
				"reset_password_token":   "",
				"reset_password_expires": "",
			},
		},
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, email string, profile models.Profile) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$set": bson.M{
			"profile":              profile,
			"onboarding_completed": true,
		},
	})
	return err
}

// EnsureIndexes creates necessary indexes for the users collection
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "refresh_token_hash", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "reset_password_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
