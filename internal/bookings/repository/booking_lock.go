package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"roamify/pkg/config"
)

const LockCollectionName = "booking_locks"

// ErrLockHeld means another booking attempt for the same property holds the
// advisory lock right now.
var ErrLockHeld = errors.New("booking lock already held")

type bookingLock struct {
	ID        string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// BookingLockRepository serializes booking creation per property. A lock is a
// document whose _id is the property ID; the unique index on _id makes the
// insert the atomic acquire. A TTL index on expires_at reaps locks orphaned by
// a crashed process.
type BookingLockRepository interface {
	Acquire(ctx context.Context, propertyID string) error
	Release(ctx context.Context, propertyID string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoBookingLockRepository) Acquire(ctx context.Context, propertyID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := bookingLock{
		ID:        propertyID,
		ExpiresAt: now.Add(r.cfg.BookingLockTTL),
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}

	// The TTL monitor only runs periodically, so an expired lock may still
	// be present. Remove it if stale and retry the insert once.
	_, delErr := r.collection.DeleteOne(ctx, bson.M{
		"_id":        propertyID,
		"expires_at": bson.M{"$lt": now},
	})
	if delErr != nil {
		return fmt.Errorf("failed to clear stale booking lock: %w", delErr)
	}

	if _, err = r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrLockHeld
		}
		return fmt.Errorf("failed to acquire booking lock: %w", err)
	}
	return nil
}

func (r *mongoBookingLockRepository) Release(ctx context.Context, propertyID string) error {
	// Release must not inherit a canceled request context, the lock would
	// otherwise leak until the TTL fires.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": propertyID}); err != nil {
		return fmt.Errorf("failed to release booking lock: %w", err)
	}
	return nil
}
