package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	usererrors "roamify/internal/users/errors"
	"roamify/pkg/config"
	"roamify/pkg/model"
)

const CollectionName = "users"

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	AddSavedProperty(ctx context.Context, userID, propertyID string) error
	RemoveSavedProperty(ctx context.Context, userID, propertyID string) error
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoUserRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", usererrors.ErrInvalidID, id)
	}

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usererrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

func (r *mongoUserRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.PhoneNumber != "" {
		set["phone_number"] = update.PhoneNumber
	}
	if update.ProfileImage != "" {
		set["profile_image"] = update.ProfileImage
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, usererrors.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// AddSavedProperty is idempotent: $addToSet never duplicates an entry.
func (r *mongoUserRepository) AddSavedProperty(ctx context.Context, userID, propertyID string) error {
	return r.updateSaved(ctx, userID, bson.M{"$addToSet": bson.M{"saved_properties": propertyID}})
}

// RemoveSavedProperty is idempotent: $pull of an absent entry is a no-op.
func (r *mongoUserRepository) RemoveSavedProperty(ctx context.Context, userID, propertyID string) error {
	return r.updateSaved(ctx, userID, bson.M{"$pull": bson.M{"saved_properties": propertyID}})
}

func (r *mongoUserRepository) updateSaved(ctx context.Context, userID string, update bson.M) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update saved properties: %w", err)
	}
	if result.MatchedCount == 0 {
		return usererrors.ErrNotFound
	}
	return nil
}
