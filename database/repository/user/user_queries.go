package userRepo

import (
	"context"
	"fmt"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// publicProjection keeps credentials out of listings.
var publicProjection = bson.M{"passwordHash": 0, "fcmToken": 0}

func (r *MongoUserRepo) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}}, options.Find().SetProjection(publicProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// List returns one page of users matching the search, newest first.
func (r *MongoUserRepo) List(ctx context.Context, search models.UserSearch) ([]models.User, int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{}
	if search.Role != "" {
		filter["role"] = search.Role
	}
	if search.Status != "" {
		filter["status"] = search.Status
	}
	if search.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": repository.ContainsPattern(search.Search)},
			bson.M{"email": repository.ContainsPattern(search.Search)},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := repository.PageOptions(search.Page, search.Limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(publicProjection)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, total, nil
}

// Count counts users, optionally narrowed by role and creation time.
func (r *MongoUserRepo) Count(ctx context.Context, role string, since time.Time) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
