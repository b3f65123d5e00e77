package notificationRepo

import (
	"context"
	"errors"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo creates the repository over the "notifications" collection.
func NewMongoNotificationRepo(db *mongo.Database) NotificationRepository {
	repo := &MongoNotificationRepo{coll: db.Collection("notifications")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("notificationRepo: %v", err)
	}
	return repo
}

func (r *MongoNotificationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "role", Value: 1},
			{Key: "read", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func (r *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": n.ID}
	update := bson.M{"$setOnInsert": n}
	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return utils.NewStoreUnavailable("failed to store notification", err)
	}
	return nil
}

func (r *MongoNotificationRepo) ListFor(ctx context.Context, userID string, role models.Role, unreadOnly bool, limit int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "role": role}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.NewStoreUnavailable("failed to list notifications", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.Notification, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, utils.NewStoreUnavailable("failed to decode notifications", err)
	}
	return items, nil
}

func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id, userID string, role models.Role) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "userId": userID, "role": role}
	update := bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("Notification not found")
		}
		return nil, utils.NewStoreUnavailable("failed to mark notification read", err)
	}
	return &n, nil
}

func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, userID string, role models.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "role": role, "read": false}
	update := bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, utils.NewStoreUnavailable("failed to mark notifications read", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoNotificationRepo) CountUnread(ctx context.Context, userID string, role models.Role) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "role": role, "read": false})
	if err != nil {
		return 0, utils.NewStoreUnavailable("failed to count notifications", err)
	}
	return n, nil
}
