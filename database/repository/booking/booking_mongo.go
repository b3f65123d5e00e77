package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates the repository over the "bookings" collection.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("bookingRepo: %v", err)
	}
	return repo
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return utils.NewStoreUnavailable("failed to create booking", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("Booking not found")
		}
		return nil, utils.NewStoreUnavailable(fmt.Sprintf("error fetching booking %s", id), err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	expected := booking.Version
	next := booking.Clone()
	next.Version = expected + 1

	filter := bson.M{"id": booking.ID, "version": expected}
	res, err := r.coll.ReplaceOne(ctx, filter, next)
	if err != nil {
		return utils.NewStoreUnavailable(fmt.Sprintf("error updating booking %s", booking.ID), err)
	}
	if res.MatchedCount == 0 {
		return utils.NewConflict("booking was modified concurrently; reload and retry")
	}
	booking.Version = next.Version
	return nil
}

func (r *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string, limit int64) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"customerId": customerID}, limit)
}

func (r *MongoBookingRepo) ListByLabor(ctx context.Context, laborID string, decision models.Decision, limit int64) ([]models.Booking, error) {
	filter := bson.M{"laborId": laborID}
	if decision != "" {
		filter["decision"] = decision
	}
	return r.find(ctx, filter, limit)
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, limit int64) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailable("error listing bookings", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.NewStoreUnavailable("error decoding bookings", err)
	}
	return bookings, nil
}

type groupCount struct {
	ID    *string `bson:"_id"`
	Count int64   `bson:"count"`
}

func (r *MongoBookingRepo) aggregateCounts(ctx context.Context, match bson.M, field string) ([]groupCount, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, utils.NewStoreUnavailable("error aggregating bookings", err)
	}
	defer cursor.Close(ctx)

	var rows []groupCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, utils.NewStoreUnavailable("error decoding booking aggregates", err)
	}
	return rows, nil
}

func (r *MongoBookingRepo) CountByDecision(ctx context.Context, filter CountFilter) (models.BookingCounts, error) {
	match := bson.M{}
	if filter.CustomerID != "" {
		match["customerId"] = filter.CustomerID
	}
	if filter.LaborID != "" {
		match["laborId"] = filter.LaborID
	}

	rows, err := r.aggregateCounts(ctx, match, "decision")
	if err != nil {
		return nil, err
	}
	counts := models.NewBookingCounts()
	for _, row := range rows {
		if row.ID != nil {
			counts[models.Decision(*row.ID)] = row.Count
		}
	}
	return counts, nil
}

func (r *MongoBookingRepo) CountByPaymentStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.aggregateCounts(ctx, bson.M{}, "paymentStatus")
	if err != nil {
		return nil, err
	}
	counts := map[string]int64{
		PaymentStatusNone:             0,
		string(models.PaymentPending): 0,
		string(models.PaymentPaid):    0,
	}
	for _, row := range rows {
		key := PaymentStatusNone
		if row.ID != nil {
			key = *row.ID
		}
		counts[key] += row.Count
	}
	return counts, nil
}
