package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for the listing and aggregation queries.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "laborId", Value: 1}, {Key: "decision", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "decision", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "paymentStatus", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "laborId", Value: 1}, {Key: "paymentStatus", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "jobDate", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
