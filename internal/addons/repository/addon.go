package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	addonserrors "theworks/internal/addons/errors"
	"theworks/pkg/config"
	"theworks/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Addons"

type AddonRepository interface {
	Create(ctx context.Context, addon *model.Addon) error
	FindByID(ctx context.Context, id string) (*model.Addon, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]*model.Addon, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Addon, error)
	FindActive(ctx context.Context, limit int, offset int64) ([]*model.Addon, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, update *model.AddonUpdate) error
	Delete(ctx context.Context, id string) error
}

type mongoAddonRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAddonRepository(cfg *config.Config) AddonRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAddonRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAddonRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAddonRepository) Create(ctx context.Context, addon *model.Addon) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	addon.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, addon)
	if err != nil {
		return fmt.Errorf("failed to create add-on: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		addon.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAddonRepository) FindByID(ctx context.Context, id string) (*model.Addon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", addonserrors.ErrInvalidID, id)
	}

	var addon model.Addon
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&addon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, addonserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find add-on: %w", err)
	}

	return &addon, nil
}

// FindActiveByIDs returns the subset of the requested ids that exist and are
// active. Callers compare lengths to detect dangling references; a malformed
// id simply never matches.
func (r *mongoAddonRepository) FindActiveByIDs(ctx context.Context, ids []string) ([]*model.Addon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, oid)
	}

	if len(objectIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"_id":    bson.M{"$in": objectIDs},
		"active": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find add-ons: %w", err)
	}
	defer cursor.Close(ctx)

	var addons []*model.Addon
	if err = cursor.All(ctx, &addons); err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}

	return addons, nil
}

func (r *mongoAddonRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Addon, error) {
	return r.findMany(ctx, bson.M{}, limit, offset)
}

func (r *mongoAddonRepository) FindActive(ctx context.Context, limit int, offset int64) ([]*model.Addon, error) {
	return r.findMany(ctx, bson.M{"active": true}, limit, offset)
}

func (r *mongoAddonRepository) findMany(ctx context.Context, filter bson.M, limit int, offset int64) ([]*model.Addon, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find add-ons: %w", err)
	}
	defer cursor.Close(ctx)

	var addons []*model.Addon
	if err = cursor.All(ctx, &addons); err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}

	return addons, nil
}

func (r *mongoAddonRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{})
}

func (r *mongoAddonRepository) CountActive(ctx context.Context) (int64, error) {
	return r.count(ctx, bson.M{"active": true})
}

func (r *mongoAddonRepository) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count add-ons: %w", err)
	}
	return count, nil
}

func (r *mongoAddonRepository) Update(ctx context.Context, id string, update *model.AddonUpdate) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", addonserrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if update.Name != "" {
		set["name"] = update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.PriceCents != nil {
		set["price_cents"] = *update.PriceCents
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update add-on: %w", err)
	}

	if result.MatchedCount == 0 {
		return addonserrors.ErrNotFound
	}

	return nil
}

func (r *mongoAddonRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", addonserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete add-on: %w", err)
	}

	if result.DeletedCount == 0 {
		return addonserrors.ErrNotFound
	}

	return nil
}
