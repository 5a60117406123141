package taskerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTaskerRepo implements TaskerRepository using MongoDB.
type MongoTaskerRepo struct {
	coll *mongo.Collection
}

func NewMongoTaskerRepo(db *mongo.Database) (*MongoTaskerRepo, error) {
	repo := &MongoTaskerRepo{coll: db.Collection("taskers")}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes enforces one profile per user.
func (r *MongoTaskerRepo) ensureIndexes() error {
	ctx, cancel := repository.WithTimeout(context.Background(), repository.IndexTimeout)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create tasker indexes: %w", err)
	}
	return nil
}

func (r *MongoTaskerRepo) Create(ctx context.Context, tasker *models.Tasker) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	tasker.CreatedAt = now
	tasker.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, tasker); err != nil {
		return fmt.Errorf("failed to create tasker: %w", repository.TranslateWriteError(err))
	}
	return nil
}

func (r *MongoTaskerRepo) findOne(ctx context.Context, filter bson.M) (*models.Tasker, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	var tasker models.Tasker
	if err := r.coll.FindOne(ctx, filter).Decode(&tasker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tasker: %w", err)
	}
	return &tasker, nil
}

func (r *MongoTaskerRepo) GetByID(ctx context.Context, id string) (*models.Tasker, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoTaskerRepo) GetByUserID(ctx context.Context, userID string) (*models.Tasker, error) {
	return r.findOne(ctx, bson.M{"userId": userID})
}

func (r *MongoTaskerRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Tasker, error) {
	if len(ids) == 0 {
		return []models.Tasker{}, nil
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch taskers: %w", err)
	}
	taskers := []models.Tasker{}
	if err := cursor.All(ctx, &taskers); err != nil {
		return nil, fmt.Errorf("failed to decode taskers: %w", err)
	}
	return taskers, nil
}

func (r *MongoTaskerRepo) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check tasker profile: %w", err)
	}
	return n > 0, nil
}

func (r *MongoTaskerRepo) UpdateFields(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update tasker %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoTaskerRepo) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete tasker for user %s: %w", userID, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
