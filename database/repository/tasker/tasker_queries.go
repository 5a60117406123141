package taskerRepo

import (
	"context"
	"fmt"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withUser joins the owning user and flattens its name and email.
func withUser() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "userId",
			"foreignField": "id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{"name": "$user.name", "email": "$user.email"}}},
		{{Key: "$project", Value: bson.M{"user": 0}}},
	}
}

func (r *MongoTaskerRepo) GetProfileByUserID(ctx context.Context, userID string) (*models.TaskerProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$limit", Value: 1}},
	}, withUser()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasker profile: %w", err)
	}
	var profiles []models.TaskerProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode tasker profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, repository.ErrNotFound
	}
	return &profiles[0], nil
}

type facetResult struct {
	Items []models.TaskerProfile `bson:"items"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// List pages through tasker profiles; search matches the user's name or email.
func (r *MongoTaskerRepo) List(ctx context.Context, search models.TaskerSearch) ([]models.TaskerProfile, int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	if search.Status != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"status": search.Status}}})
	}
	pipeline = append(pipeline, withUser()...)
	if search.Search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"name": repository.ContainsPattern(search.Search)},
			bson.M{"email": repository.ContainsPattern(search.Search)},
		}}}})
	}

	page := bson.A{bson.M{"$sort": bson.M{"createdAt": -1}}}
	if search.Limit > 0 {
		page = append(page,
			bson.M{"$skip": repository.Skip(search.Page, search.Limit)},
			bson.M{"$limit": search.Limit},
		)
	}
	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"items": page,
		"total": bson.A{bson.M{"$count": "count"}},
	}}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list taskers: %w", err)
	}
	var results []facetResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("failed to decode taskers: %w", err)
	}
	if len(results) == 0 {
		return []models.TaskerProfile{}, 0, nil
	}
	var total int64
	if len(results[0].Total) > 0 {
		total = results[0].Total[0].Count
	}
	items := results[0].Items
	if items == nil {
		items = []models.TaskerProfile{}
	}
	return items, total, nil
}

func (r *MongoTaskerRepo) Count(ctx context.Context, status string, since time.Time) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if !since.IsZero() {
		filter["createdAt"] = bson.M{"$gte": since}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count taskers: %w", err)
	}
	return n, nil
}
