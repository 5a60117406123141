package serviceRepo

import (
	"context"
	"fmt"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// publicSearchFields are matched case-insensitively by the catalogue search.
var publicSearchFields = []string{
	"title",
	"description",
	"tags",
	"owner.name",
	"tasker.city",
	"tasker.region",
	"tasker.country",
	"tasker.addressLine1",
	"tasker.addressLine2",
}

// ListPublic returns active, approved services joined with their tasker and
// the tasker's user.
func (r *MongoServiceRepo) ListPublic(ctx context.Context, filter models.PublicServiceFilter) ([]models.ServiceListing, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	match := bson.M{"status": models.ServiceStatusActive, "state": models.ServiceStateApproved}
	if filter.Category != "" {
		match["category"] = filter.Category
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "taskers",
			"localField":   "taskerId",
			"foreignField": "id",
			"as":           "tasker",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$tasker", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "tasker.userId",
			"foreignField": "id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
	}

	if filter.Search != "" {
		or := bson.A{}
		for _, field := range publicSearchFields {
			or = append(or, bson.M{field: repository.ContainsPattern(filter.Search)})
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$or": or}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.M{"tasker": bson.M{
			"id":           "$tasker.id",
			"userId":       "$tasker.userId",
			"name":         "$owner.name",
			"city":         "$tasker.city",
			"region":       "$tasker.region",
			"country":      "$tasker.country",
			"hourlyRate":   "$tasker.hourlyRate",
			"profileImage": "$tasker.profileImage",
		}}}},
		bson.D{{Key: "$project", Value: bson.M{"owner": 0}}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate public services: %w", err)
	}
	listings := []models.ServiceListing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode public services: %w", err)
	}
	return listings, nil
}

// List pages through all services for moderation.
func (r *MongoServiceRepo) List(ctx context.Context, search models.ServiceSearch) ([]models.Service, int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{}
	if search.State != "" {
		filter["state"] = search.State
	}
	if search.Status != "" {
		filter["status"] = search.Status
	}
	if search.Category != "" {
		filter["category"] = search.Category
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}
	opts := repository.PageOptions(search.Page, search.Limit).SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	services := []models.Service{}
	if err := cursor.All(ctx, &services); err != nil {
		return nil, 0, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, total, nil
}

func (r *MongoServiceRepo) Count(ctx context.Context, state, status string) (int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	filter := bson.M{}
	if state != "" {
		filter["state"] = state
	}
	if status != "" {
		filter["status"] = status
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count services: %w", err)
	}
	return n, nil
}
