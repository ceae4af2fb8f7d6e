package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrSlotTaken is returned by Reserve when the exact (doctorId, date, time)
// triple is already booked.
var ErrSlotTaken = errors.New("slot already booked")

// BookedSlot is the only persisted booking record: append-only, never
// updated or deleted. Date and Time are the literal strings the booking flow
// uses ("2025-01-01", "10:00 AM"); equality is string equality.
type BookedSlot struct {
	DoctorID  int       `bson:"doctorId" json:"doctorId"`
	Date      string    `bson:"date" json:"date"`
	Time      string    `bson:"time" json:"time"`
	PatientID string    `bson:"patientId,omitempty" json:"patientId,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Ledger records bookings. Reserve is atomic: concurrent reservations of the
// same slot see exactly one success and ErrSlotTaken for the rest, replacing
// the check-then-book dance the booking UIs used to do.
type Ledger interface {
	Reserve(ctx context.Context, doctorID int, date, timeStr, patientID string) (BookedSlot, error)
	IsAvailable(ctx context.Context, doctorID int, date, timeStr string) (bool, error)
	ForDoctor(ctx context.Context, doctorID int) ([]BookedSlot, error)
	ForPatient(ctx context.Context, patientID string) ([]BookedSlot, error)
}

// Busyness is the scoring heuristic for a doctor's booking load: every
// booking counts once, bookings created within the last 7 days count twice
// more.
func Busyness(bookings []BookedSlot, now time.Time) int {
	recent := 0
	for _, b := range bookings {
		if b.CreatedAt.After(now.AddDate(0, 0, -7)) || b.CreatedAt.Equal(now.AddDate(0, 0, -7)) {
			recent++
		}
	}
	return len(bookings) + 2*recent
}
