package ledger

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// MemoryLedger keeps bookings in process memory. It backs tests and demo
// deployments without MongoDB; the reserve-if-free check is a mutex-guarded
// compare-and-set on the slot key.
type MemoryLedger struct {
	mu       sync.Mutex
	slots    map[string]int
	bookings []BookedSlot
}

func NewMemory() *MemoryLedger {
	return &MemoryLedger{slots: make(map[string]int)}
}

func slotKey(doctorID int, date, timeStr string) string {
	return strconv.Itoa(doctorID) + "|" + date + "|" + timeStr
}

func (m *MemoryLedger) Reserve(ctx context.Context, doctorID int, date, timeStr, patientID string) (BookedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey(doctorID, date, timeStr)
	if _, taken := m.slots[key]; taken {
		return BookedSlot{}, ErrSlotTaken
	}

	booking := BookedSlot{
		DoctorID:  doctorID,
		Date:      date,
		Time:      timeStr,
		PatientID: patientID,
		CreatedAt: time.Now(),
	}
	m.slots[key] = len(m.bookings)
	m.bookings = append(m.bookings, booking)
	return booking, nil
}

func (m *MemoryLedger) IsAvailable(ctx context.Context, doctorID int, date, timeStr string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, taken := m.slots[slotKey(doctorID, date, timeStr)]
	return !taken, nil
}

func (m *MemoryLedger) ForDoctor(ctx context.Context, doctorID int) ([]BookedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]BookedSlot, 0)
	for _, b := range m.bookings {
		if b.DoctorID == doctorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryLedger) ForPatient(ctx context.Context, patientID string) ([]BookedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]BookedSlot, 0)
	for _, b := range m.bookings {
		if b.PatientID != "" && b.PatientID == patientID {
			out = append(out, b)
		}
	}
	return out, nil
}
