package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	propertyerrors "roamify/internal/properties/errors"
	"roamify/pkg/config"
	"roamify/pkg/model"
)

const CollectionName = "properties"

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error)
	FindActive(ctx context.Context, filter model.PropertyFilter, page, limit int) ([]*model.Property, error)
	CountActive(ctx context.Context, filter model.PropertyFilter) (int64, error)
	FindByHost(ctx context.Context, hostID string) ([]*model.Property, error)
	Replace(ctx context.Context, id string, property *model.Property) error
	Delete(ctx context.Context, id string) error
}

type mongoPropertyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPropertyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		// Inside a transaction the session context must not be wrapped.
		return ctx, func() {}
	}
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	// IDs are generated client-side and stored as hex strings, so references
	// between collections stay plain strings end to end.
	property.ID = primitive.NewObjectID().Hex()
	now := time.Now().UTC().Truncate(time.Millisecond)
	property.CreatedAt = now
	property.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, property); err != nil {
		property.ID = ""
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, fmt.Errorf("%w: %s", propertyerrors.ErrInvalidID, id)
	}

	var property model.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, propertyerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}

	return &property, nil
}

func (r *mongoPropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			// Stale references are skipped, not fatal.
			continue
		}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": valid}})
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepository) FindActive(ctx context.Context, filter model.PropertyFilter, page, limit int) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepository) CountActive(ctx context.Context, filter model.PropertyFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func (r *mongoPropertyRepository) FindByHost(ctx context.Context, hostID string) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"host": hostID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list host properties: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

func (r *mongoPropertyRepository) Replace(ctx context.Context, id string, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", propertyerrors.ErrInvalidID, id)
	}

	property.ID = id
	property.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, property)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if result.MatchedCount == 0 {
		return propertyerrors.ErrNotFound
	}
	return nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %s", propertyerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if result.DeletedCount == 0 {
		return propertyerrors.ErrNotFound
	}
	return nil
}

// buildListFilter translates the public listing query into a Mongo filter.
// Free-text input is escaped before it reaches a regex so callers cannot
// inject patterns. Only active listings are ever matched.
func buildListFilter(filter model.PropertyFilter) bson.M {
	query := bson.M{"status": model.PropertyActive}

	if filter.City != "" {
		query["location.city"] = bson.M{
			"$regex":   regexp.QuoteMeta(filter.City),
			"$options": "i",
		}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price.regular"] = price
	}

	if filter.Guests != nil {
		query["rules.max_guests"] = bson.M{"$gte": *filter.Guests}
	}

	if filter.Term != "" {
		term := bson.M{
			"$regex":   regexp.QuoteMeta(filter.Term),
			"$options": "i",
		}
		query["$or"] = []bson.M{
			{"title": term},
			{"description": term},
			{"location.city": term},
		}
	}

	return query
}
