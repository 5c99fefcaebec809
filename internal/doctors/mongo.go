package doctors

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinova/intake/pkg/logging"
)

const queryTimeout = 5 * time.Second

// MongoDirectory reads doctors from the external directory collection.
// Read failures fall back to the demo dataset so the conversation keeps
// serving options.
type MongoDirectory struct {
	coll   *mongo.Collection
	logger *logging.Logger
}

// NewMongoDirectory creates a directory backed by the given collection.
func NewMongoDirectory(coll *mongo.Collection, logger *logging.Logger) *MongoDirectory {
	if coll == nil {
		panic("doctors: mongo collection required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MongoDirectory{coll: coll, logger: logger}
}

// List returns all non-deleted doctors, or the demo dataset when the read
// fails.
func (d *MongoDirectory) List(ctx context.Context) ([]Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := d.coll.Find(ctx, bson.M{"isDeleted": false})
	if err != nil {
		d.logger.Warn("doctors: directory read failed, serving demo dataset", "error", err)
		return demoDoctors(), nil
	}
	defer cursor.Close(ctx)

	var out []Doctor
	if err := cursor.All(ctx, &out); err != nil {
		d.logger.Warn("doctors: directory decode failed, serving demo dataset", "error", err)
		return demoDoctors(), nil
	}
	if len(out) == 0 {
		return demoDoctors(), nil
	}
	return out, nil
}

// Get returns the doctor with the given id, falling back to the demo
// dataset on read failure.
func (d *MongoDirectory) Get(ctx context.Context, id string) (*Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc Doctor
	err := d.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == nil {
		return &doc, nil
	}
	if err != mongo.ErrNoDocuments {
		d.logger.Warn("doctors: directory lookup failed, checking demo dataset", "error", err, "doctor_id", id)
	}
	for _, demo := range demoDoctors() {
		if demo.ID == id {
			found := demo
			return &found, nil
		}
	}
	return nil, ErrDoctorNotFound
}
