package ledger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLedger persists bookings in a collection carrying a unique index on
// (doctorId, date, time); the duplicate-key error on insert is what makes
// Reserve atomic across instances.
type MongoLedger struct {
	col *mongo.Collection
}

func NewMongo(col *mongo.Collection) *MongoLedger {
	return &MongoLedger{col: col}
}

func (l *MongoLedger) Reserve(ctx context.Context, doctorID int, date, timeStr, patientID string) (BookedSlot, error) {
	booking := BookedSlot{
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeStr,
		PatientID: patientID,
		CreatedAt: time.Now(),
	}

	if _, err := l.col.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return BookedSlot{}, ErrSlotTaken
		}
		return BookedSlot{}, err
	}
	return booking, nil
}

func (l *MongoLedger) IsAvailable(ctx context.Context, doctorID int, date, timeStr string) (bool, error) {
	filter := bson.M{"doctorId": doctorID, "date": date, "time": timeStr}
	err := l.col.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (l *MongoLedger) ForDoctor(ctx context.Context, doctorID int) ([]BookedSlot, error) {
	return l.find(ctx, bson.M{"doctorId": doctorID})
}

func (l *MongoLedger) ForPatient(ctx context.Context, patientID string) ([]BookedSlot, error) {
	return l.find(ctx, bson.M{"patientId": patientID})
}

func (l *MongoLedger) find(ctx context.Context, filter bson.M) ([]BookedSlot, error) {
	cursor, err := l.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]BookedSlot, 0)
	for cursor.Next(ctx) {
		var b BookedSlot
		if err := cursor.Decode(&b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
