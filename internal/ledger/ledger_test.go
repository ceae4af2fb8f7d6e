package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestReserveThenUnavailable(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if _, err := l.Reserve(ctx, 7, "2025-01-01", "10:00 AM", ""); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	free, err := l.IsAvailable(ctx, 7, "2025-01-01", "10:00 AM")
	if err != nil {
		t.Fatalf("isAvailable: %v", err)
	}
	if free {
		t.Fatal("booked slot must be unavailable")
	}

	free, err = l.IsAvailable(ctx, 7, "2025-01-01", "10:30 AM")
	if err != nil {
		t.Fatalf("isAvailable: %v", err)
	}
	if !free {
		t.Fatal("adjacent slot must remain available")
	}
}

func TestReserveConflict(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	if _, err := l.Reserve(ctx, 3, "2025-06-15", "9:00 AM", "patient-a"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := l.Reserve(ctx, 3, "2025-06-15", "9:00 AM", "patient-b"); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// same time for another doctor is an unrelated slot
	if _, err := l.Reserve(ctx, 4, "2025-06-15", "9:00 AM", "patient-b"); err != nil {
		t.Fatalf("other doctor reserve: %v", err)
	}
}

func TestReserveConcurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Reserve(ctx, 1, "2025-03-01", "11:00 AM", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful reservation, got %d", succeeded)
	}
}

func TestForDoctorAndPatient(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	l.Reserve(ctx, 1, "2025-01-01", "9:00 AM", "p1")
	l.Reserve(ctx, 1, "2025-01-02", "9:00 AM", "p2")
	l.Reserve(ctx, 2, "2025-01-01", "9:00 AM", "p1")

	doctor1, err := l.ForDoctor(ctx, 1)
	if err != nil {
		t.Fatalf("forDoctor: %v", err)
	}
	if len(doctor1) != 2 {
		t.Fatalf("expected 2 bookings for doctor 1, got %d", len(doctor1))
	}

	patient1, err := l.ForPatient(ctx, "p1")
	if err != nil {
		t.Fatalf("forPatient: %v", err)
	}
	if len(patient1) != 2 {
		t.Fatalf("expected 2 bookings for patient p1, got %d", len(patient1))
	}

	anon, err := l.ForPatient(ctx, "")
	if err != nil {
		t.Fatalf("forPatient: %v", err)
	}
	if len(anon) != 0 {
		t.Fatal("empty patient id must not match anonymous bookings")
	}
}

func TestBusyness(t *testing.T) {
	now := time.Date(2026, 2, 4, 12, 0, 0, 0, time.UTC)
	bookings := []BookedSlot{
		{DoctorID: 1, CreatedAt: now.AddDate(0, 0, -1)},  // recent
		{DoctorID: 1, CreatedAt: now.AddDate(0, 0, -3)},  // recent
		{DoctorID: 1, CreatedAt: now.AddDate(0, 0, -30)}, // old
	}
	// 3 total + 2 recent counted twice more
	if got := Busyness(bookings, now); got != 7 {
		t.Fatalf("expected busyness 7, got %d", got)
	}
	if Busyness(nil, now) != 0 {
		t.Fatal("no bookings means zero busyness")
	}
}
