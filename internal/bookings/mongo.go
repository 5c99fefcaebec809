package bookings

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const queryTimeout = 5 * time.Second

// MongoRepository persists bookings in MongoDB collections mirroring the
// document shapes the lookup endpoints serve.
type MongoRepository struct {
	patients      *mongo.Collection
	confirmations *mongo.Collection
	bookedSlots   *mongo.Collection
}

// NewMongoRepository creates a repository on the given database.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	if db == nil {
		panic("bookings: mongo database required")
	}
	return &MongoRepository{
		patients:      db.Collection("patients"),
		confirmations: db.Collection("confirmations"),
		bookedSlots:   db.Collection("booked_slots"),
	}
}

// CodeExists reports whether any patient record carries the code.
func (r *MongoRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.patients.FindOne(ctx, bson.M{"uniqueCode": code}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bookings: code existence check: %w", err)
	}
	return true, nil
}

// InsertPatient inserts a patient document.
func (r *MongoRepository) InsertPatient(ctx context.Context, rec *PatientRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.patients.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("bookings: insert patient: %w", err)
	}
	return nil
}

// InsertConfirmation inserts a confirmation document.
func (r *MongoRepository) InsertConfirmation(ctx context.Context, conf *Confirmation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.confirmations.InsertOne(ctx, conf); err != nil {
		return fmt.Errorf("bookings: insert confirmation: %w", err)
	}
	return nil
}

// MarkSlotBooked inserts a booked-slot marker.
func (r *MongoRepository) MarkSlotBooked(ctx context.Context, key SlotKey) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.bookedSlots.InsertOne(ctx, key); err != nil {
		return fmt.Errorf("bookings: mark slot booked: %w", err)
	}
	return nil
}

// BookedTimes returns the reserved times for a doctor and date.
func (r *MongoRepository) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.bookedSlots.Find(ctx, bson.M{"doctor": doctorID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("bookings: booked times: %w", err)
	}
	defer cursor.Close(ctx)

	var keys []SlotKey
	if err := cursor.All(ctx, &keys); err != nil {
		return nil, fmt.Errorf("bookings: decode booked times: %w", err)
	}

	times := make([]string, 0, len(keys))
	for _, k := range keys {
		times = append(times, k.Time)
	}
	return times, nil
}

// FindPatientByCode returns the patient carrying the code.
func (r *MongoRepository) FindPatientByCode(ctx context.Context, code string) (*PatientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rec PatientRecord
	err := r.patients.FindOne(ctx, bson.M{"uniqueCode": code}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bookings: find patient by code: %w", err)
	}
	return &rec, nil
}

// FindConfirmationByPatient returns the confirmation for a patient.
func (r *MongoRepository) FindConfirmationByPatient(ctx context.Context, patientID string) (*Confirmation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var conf Confirmation
	err := r.confirmations.FindOne(ctx, bson.M{"patient": patientID}).Decode(&conf)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("bookings: find confirmation: %w", err)
	}
	return &conf, nil
}
