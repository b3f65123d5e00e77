package directoryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"laborlink/models"
	"laborlink/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDirectory reads identities from the "labors" and "customers" collections.
type MongoDirectory struct {
	labors    *mongo.Collection
	customers *mongo.Collection
}

func NewMongoDirectory(db *mongo.Database) *MongoDirectory {
	return &MongoDirectory{
		labors:    db.Collection("labors"),
		customers: db.Collection("customers"),
	}
}

func (d *MongoDirectory) FindLaborByID(ctx context.Context, id string) (*models.Labor, error) {
	var raw bson.Raw
	if err := d.findOne(ctx, d.labors, id, &raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("Labor not found")
		}
		return nil, utils.NewStoreUnavailable(fmt.Sprintf("error fetching labor %s", id), err)
	}
	labor, err := decodeLabor(raw)
	if err != nil {
		return nil, utils.NewStoreUnavailable(fmt.Sprintf("error decoding labor %s", id), err)
	}
	return labor, nil
}

// decodeLabor reads a labors record. Records written without isActive
// (or with null) are active.
func decodeLabor(raw bson.Raw) (*models.Labor, error) {
	var labor models.Labor
	if err := bson.Unmarshal(raw, &labor); err != nil {
		return nil, err
	}
	if v, err := raw.LookupErr("isActive"); err != nil || v.Type == bsontype.Null {
		labor.IsActive = true
	}
	return &labor, nil
}

func (d *MongoDirectory) FindCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := d.findOne(ctx, d.customers, id, &customer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NewNotFound("Customer not found")
		}
		return nil, utils.NewStoreUnavailable(fmt.Sprintf("error fetching customer %s", id), err)
	}
	return &customer, nil
}

func (d *MongoDirectory) findOne(ctx context.Context, coll *mongo.Collection, id string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Password hashes and other private fields stay in the store.
	opts := options.FindOne().SetProjection(bson.M{"passwordHash": 0})
	return coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(out)
}

// UpsertLabor writes a labor record. Used by the seeder.
func (d *MongoDirectory) UpsertLabor(ctx context.Context, labor *models.Labor, passwordHash string) error {
	return d.upsert(ctx, d.labors, labor.ID, labor, passwordHash)
}

// UpsertCustomer writes a customer record. Used by the seeder.
func (d *MongoDirectory) UpsertCustomer(ctx context.Context, customer *models.Customer, passwordHash string) error {
	return d.upsert(ctx, d.customers, customer.ID, customer, passwordHash)
}

func (d *MongoDirectory) upsert(ctx context.Context, coll *mongo.Collection, id string, doc interface{}, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": doc}
	if passwordHash != "" {
		update["$setOnInsert"] = bson.M{"passwordHash": passwordHash}
	}
	_, err := coll.UpdateOne(ctx, bson.M{"id": id}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert %s in %s: %w", id, coll.Name(), err)
	}
	return nil
}
