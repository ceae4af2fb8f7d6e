package appointments

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"arogya-backend/internal/catalog"
	"arogya-backend/internal/directory"
	"arogya-backend/internal/ledger"

	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items []Appointment
}

func (f *fakeRepo) Create(ctx context.Context, appt Appointment) error {
	f.items = append(f.items, appt)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	for _, a := range f.items {
		if a.ID == id {
			return a, nil
		}
	}
	return Appointment{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) FindByPhoneAndNumber(ctx context.Context, phone, number string) (Appointment, error) {
	for _, a := range f.items {
		if a.Phone == phone && a.AppointmentNumber == number {
			return a, nil
		}
	}
	return Appointment{}, mongo.ErrNoDocuments
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int64) ([]Appointment, error) {
	return f.items, nil
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeMailer struct {
	sent []Appointment
}

func (f *fakeMailer) SendAppointmentConfirmation(ctx context.Context, appt Appointment) (string, error) {
	f.sent = append(f.sent, appt)
	return "msg-1", nil
}

var testLocation = catalog.Location{
	Country:  "India",
	State:    "Maharashtra",
	District: "Mumbai City",
	Area:     "Dadar",
}

// 2025-06-02 is a Monday.
func newTestService(t *testing.T) (*Service, *fakeRepo, *ledger.MemoryLedger) {
	t.Helper()
	tz, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	repo := &fakeRepo{}
	led := ledger.NewMemory()
	svc := NewService(repo, led, tz, nil)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 2, 10, 0, 0, 0, tz)
	}
	return svc, repo, led
}

func bookableDate(t *testing.T, d directory.Doctor, from time.Time) string {
	t.Helper()
	for i := 1; i <= 7; i++ {
		day := from.AddDate(0, 0, i)
		if worksOn(d, day.Weekday().String()) {
			return day.Format("2006-01-02")
		}
	}
	t.Fatalf("doctor %d has no bookable day in the next week", d.ID)
	return ""
}

func validCreateRequest(t *testing.T, svc *Service) CreateRequest {
	t.Helper()
	doctor := directory.Generate(testLocation)[0]
	return CreateRequest{
		Name:     "Asha Kulkarni",
		Email:    "asha@example.com",
		Phone:    "+919812345678",
		State:    testLocation.State,
		District: testLocation.District,
		Area:     testLocation.Area,
		DoctorID: doctor.ID,
		Date:     bookableDate(t, doctor, svc.now()),
		Time:     "10:00 AM",
		Reason:   "persistent cough",
	}
}

func TestCreateBooksSlot(t *testing.T) {
	svc, repo, led := newTestService(t)
	req := validCreateRequest(t, svc)

	appt, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !regexp.MustCompile(`^\d{6}$`).MatchString(appt.AppointmentNumber) {
		t.Fatalf("appointment number %q is not 6 digits", appt.AppointmentNumber)
	}
	if appt.Country != "India" {
		t.Fatalf("country defaulted to %q", appt.Country)
	}
	if appt.Status != "confirmed" {
		t.Fatalf("status = %q, want confirmed", appt.Status)
	}
	if appt.Emergency {
		t.Fatal("regular booking marked emergency")
	}
	doctor, _ := directory.ByID(directory.Generate(testLocation), req.DoctorID)
	if appt.Fee != doctor.Fee {
		t.Fatalf("fee = %d, want %d", appt.Fee, doctor.Fee)
	}
	if appt.WaitTime != doctor.WaitTime {
		t.Fatalf("wait = %d, want %d", appt.WaitTime, doctor.WaitTime)
	}
	if len(repo.items) != 1 {
		t.Fatalf("persisted %d appointments, want 1", len(repo.items))
	}

	free, err := led.IsAvailable(context.Background(), req.DoctorID, req.Date, req.Time)
	if err != nil {
		t.Fatalf("is available: %v", err)
	}
	if free {
		t.Fatal("slot still available after booking")
	}
}

func TestCreateSlotTaken(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	req.Name = "Second Patient"
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ledger.ErrSlotTaken) {
		t.Fatalf("second create err = %v, want ErrSlotTaken", err)
	}
}

func TestCreateUnknownLocation(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)
	req.District = "Atlantis"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrUnknownLocation) {
		t.Fatalf("err = %v, want ErrUnknownLocation", err)
	}
}

func TestCreateDoctorNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)
	req.DoctorID = 999

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("err = %v, want ErrDoctorNotFound", err)
	}
}

func TestCreatePastDate(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)
	req.Date = "2025-06-01"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrPastDate) {
		t.Fatalf("err = %v, want ErrPastDate", err)
	}
}

func TestCreateOffGridSlot(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)
	req.Time = "9:15 AM"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrSlotNotBookable) {
		t.Fatalf("err = %v, want ErrSlotNotBookable", err)
	}
}

func TestCreateDoctorOffDay(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)
	// No doctor works Sundays.
	req.Date = "2025-06-08"

	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrDoctorUnavailable) {
		t.Fatalf("err = %v, want ErrDoctorUnavailable", err)
	}
}

func TestCreateEmergency(t *testing.T) {
	svc, _, _ := newTestService(t)
	doctor := directory.Generate(testLocation)[0]
	req := EmergencyRequest{
		Name:     "Ravi Shinde",
		Phone:    "+919812345679",
		State:    testLocation.State,
		District: testLocation.District,
		Area:     testLocation.Area,
		DoctorID: doctor.ID,
		Time:     "10:30 AM",
		Reason:   "severe chest pain",
	}

	appt, err := svc.CreateEmergency(context.Background(), req)
	if err != nil {
		t.Fatalf("create emergency: %v", err)
	}
	if !appt.Emergency {
		t.Fatal("emergency booking not marked emergency")
	}
	if appt.Date != "2025-06-02" {
		t.Fatalf("date = %q, want today", appt.Date)
	}
	if appt.WaitTime < 5 || appt.WaitTime > 24 {
		t.Fatalf("emergency wait = %d, want 5..24", appt.WaitTime)
	}
}

func TestCreateEmergencyOffGrid(t *testing.T) {
	svc, _, _ := newTestService(t)
	doctor := directory.Generate(testLocation)[0]
	req := EmergencyRequest{
		Name:     "Ravi Shinde",
		Phone:    "+919812345679",
		State:    testLocation.State,
		District: testLocation.District,
		Area:     testLocation.Area,
		DoctorID: doctor.ID,
		// Already past at the fixed 10:00 AM clock.
		Time:   "9:00 AM",
		Reason: "severe chest pain",
	}

	if _, err := svc.CreateEmergency(context.Background(), req); !errors.Is(err, ErrSlotNotBookable) {
		t.Fatalf("err = %v, want ErrSlotNotBookable", err)
	}
}

func TestGetAndLookup(t *testing.T) {
	svc, _, _ := newTestService(t)
	req := validCreateRequest(t, svc)

	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AppointmentNumber != created.AppointmentNumber {
		t.Fatalf("get returned wrong appointment")
	}

	found, err := svc.Lookup(context.Background(), LookupRequest{
		Phone:             created.Phone,
		AppointmentNumber: created.AppointmentNumber,
	})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("lookup returned wrong appointment")
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Lookup(context.Background(), LookupRequest{Phone: created.Phone, AppointmentNumber: "000000"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("lookup missing err = %v, want ErrNotFound", err)
	}
}

func TestNotifyConfirmationSkipsEmptyEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	mailer := &fakeMailer{}
	svc.mailer = mailer

	if err := svc.NotifyConfirmation(context.Background(), Appointment{Name: "No Email"}); err != nil {
		t.Fatalf("notify without email: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("mailer called for appointment without email")
	}

	if err := svc.NotifyConfirmation(context.Background(), Appointment{Name: "With Email", Email: "x@example.com"}); err != nil {
		t.Fatalf("notify with email: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("mailer called %d times, want 1", len(mailer.sent))
	}
}
