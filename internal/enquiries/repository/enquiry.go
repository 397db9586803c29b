package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	enquirieserrors "theworks/internal/enquiries/errors"
	"theworks/pkg/config"
	"theworks/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Enquiries"

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *model.Enquiry) error
	FindByID(ctx context.Context, id string) (*model.Enquiry, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoEnquiryRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEnquiryRepository(cfg *config.Config) EnquiryRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEnquiryRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoEnquiryRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
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

func (r *mongoEnquiryRepository) Create(ctx context.Context, enquiry *model.Enquiry) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	enquiry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, enquiry)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		enquiry.ID = oid.Hex()
	}
	return nil
}

func (r *mongoEnquiryRepository) FindByID(ctx context.Context, id string) (*model.Enquiry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", enquirieserrors.ErrInvalidID, id)
	}

	var enquiry model.Enquiry
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&enquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, enquirieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enquiry: %w", err)
	}

	return &enquiry, nil
}

func (r *mongoEnquiryRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Enquiry, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var enquiries []*model.Enquiry
	if err = cursor.All(ctx, &enquiries); err != nil {
		return nil, fmt.Errorf("failed to decode enquiries: %w", err)
	}

	return enquiries, nil
}

func (r *mongoEnquiryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}
	return count, nil
}

func (r *mongoEnquiryRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", enquirieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete enquiry: %w", err)
	}

	if result.DeletedCount == 0 {
		return enquirieserrors.ErrNotFound
	}

	return nil
}
