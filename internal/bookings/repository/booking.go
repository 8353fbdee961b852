package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingerrors "roamify/internal/bookings/errors"
	"roamify/pkg/config"
	"roamify/pkg/model"
)

const CollectionName = "bookings"

// blockingStatuses are the lifecycle states that occupy dates. Canceled and
// completed bookings never block new ones.
var blockingStatuses = []model.BookingStatus{model.BookingConfirmed, model.BookingPending}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByGuest(ctx context.Context, guestID string) ([]*model.Booking, error)
	FindByProperties(ctx context.Context, propertyIDs []string) ([]*model.Booking, error)
	FindOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus, cancellationReason string) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		// Inside a transaction the session context must not be wrapped.
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		booking.ID = ""
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

func (r *mongoBookingRepository) FindByGuest(ctx context.Context, guestID string) ([]*model.Booking, error) {
	return r.findSorted(ctx, bson.M{"guest": guestID})
}

func (r *mongoBookingRepository) FindByProperties(ctx context.Context, propertyIDs []string) ([]*model.Booking, error) {
	if len(propertyIDs) == 0 {
		return nil, nil
	}
	return r.findSorted(ctx, bson.M{"property": bson.M{"$in": propertyIDs}})
}

// FindOverlapping returns the confirmed and pending bookings of a property
// whose closed date interval intersects [checkIn, checkOut]. Two bookings
// sharing a boundary day count as overlapping.
func (r *mongoBookingRepository) FindOverlapping(ctx context.Context, propertyID string, checkIn, checkOut time.Time) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"property":       propertyID,
		"booking_status": bson.M{"$in": blockingStatuses},
		"check_in_date":  bson.M{"$lte": checkOut},
		"check_out_date": bson.M{"$gte": checkIn},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus, cancellationReason string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", bookingerrors.ErrInvalidID, id)
	}

	set := bson.M{
		"booking_status": status,
		"updated_at":     time.Now().UTC().Truncate(time.Millisecond),
	}
	if cancellationReason != "" {
		set["cancellation_reason"] = cancellationReason
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingerrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) findSorted(ctx context.Context, filter bson.M) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
