package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"taskhive/database/repository"
	"taskhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type bucket struct {
	Key   string `bson:"_id"`
	Count int64  `bson:"count"`
}

func toCounts(buckets []bucket) map[string]int64 {
	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[b.Key] = b.Count
	}
	return counts
}

// CountByStatus groups the filtered bookings by status, ignoring the status filter.
func (r *MongoBookingRepo) CountByStatus(ctx context.Context, f models.BookingFilter) (map[string]int64, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(f, false)}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking status counts: %w", err)
	}
	var buckets []bucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode booking status counts: %w", err)
	}
	return toCounts(buckets), nil
}

type statsFacet struct {
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
	ByStatus   []bucket `bson:"byStatus"`
	ByPriority []bucket `bson:"byPriority"`
	Rating     []struct {
		Average float64 `bson:"average"`
		Count   int64   `bson:"count"`
	} `bson:"rating"`
	Revenue []struct {
		Total float64 `bson:"total"`
	} `bson:"revenue"`
}

// Stats computes global booking counts, average rating and realised revenue.
func (r *MongoBookingRepo) Stats(ctx context.Context) (*models.BookingStats, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"total":      bson.A{bson.M{"$count": "count"}},
			"byStatus":   bson.A{bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
			"byPriority": bson.A{bson.M{"$group": bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}}},
			"rating": bson.A{
				bson.M{"$match": bson.M{"customerRating": bson.M{"$ne": nil}}},
				bson.M{"$group": bson.M{"_id": nil, "average": bson.M{"$avg": "$customerRating"}, "count": bson.M{"$sum": 1}}},
			},
			"revenue": bson.A{
				bson.M{"$match": bson.M{"status": models.BookingCompleted}},
				bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$actualCost", 0}}}}},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate booking stats: %w", err)
	}
	var facets []statsFacet
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("failed to decode booking stats: %w", err)
	}

	stats := &models.BookingStats{ByStatus: map[string]int64{}, ByPriority: map[string]int64{}}
	if len(facets) == 0 {
		return stats, nil
	}
	f := facets[0]
	if len(f.Total) > 0 {
		stats.Total = f.Total[0].Count
	}
	stats.ByStatus = toCounts(f.ByStatus)
	stats.ByPriority = toCounts(f.ByPriority)
	if len(f.Rating) > 0 {
		stats.AverageRating = f.Rating[0].Average
		stats.RatedCount = f.Rating[0].Count
	}
	if len(f.Revenue) > 0 {
		stats.TotalRevenue = f.Revenue[0].Total
	}
	return stats, nil
}

// RatingsByService derives rating and jobs completed from completed bookings.
func (r *MongoBookingRepo) RatingsByService(ctx context.Context, serviceIDs []string) (map[string]models.ServiceRating, error) {
	out := make(map[string]models.ServiceRating, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return out, nil
	}
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"serviceId": bson.M{"$in": serviceIDs}, "status": models.BookingCompleted}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$serviceId",
			"rating":        bson.M{"$avg": "$customerRating"},
			"jobsCompleted": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"rating":        bson.M{"$round": bson.A{bson.M{"$ifNull": bson.A{"$rating", 0}}, 1}},
			"jobsCompleted": 1,
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate service ratings: %w", err)
	}
	var ratings []models.ServiceRating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode service ratings: %w", err)
	}
	for _, rt := range ratings {
		out[rt.ServiceID] = rt
	}
	return out, nil
}

// MonthlyTrend buckets bookings created since the given time by calendar month.
func (r *MongoBookingRepo) MonthlyTrend(ctx context.Context, since time.Time) ([]models.MonthlyTrend, error) {
	ctx, cancel := repository.WithTimeout(ctx, repository.DefaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"year": bson.M{"$year": "$createdAt"}, "month": bson.M{"$month": "$createdAt"}},
			"bookings": bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.BookingCompleted}},
				bson.M{"$ifNull": bson.A{"$actualCost", 0}},
				0,
			}}},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"year":     "$_id.year",
			"month":    "$_id.month",
			"bookings": 1,
			"revenue":  1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly trend: %w", err)
	}
	trend := []models.MonthlyTrend{}
	if err := cursor.All(ctx, &trend); err != nil {
		return nil, fmt.Errorf("failed to decode monthly trend: %w", err)
	}
	return trend, nil
}
