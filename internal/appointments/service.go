package appointments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"arogya-backend/internal/catalog"
	"arogya-backend/internal/directory"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/models"
	"arogya-backend/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUnknownLocation   = errors.New("unknown location")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrDoctorUnavailable = errors.New("doctor not available on that day")
	ErrPastDate          = errors.New("date is in the past")
	ErrSlotNotBookable   = errors.New("slot not bookable")
	ErrNotFound          = errors.New("appointment not found")
)

type Mailer interface {
	SendAppointmentConfirmation(ctx context.Context, appt Appointment) (string, error)
}

type Service struct {
	repo     Repository
	ledger   ledger.Ledger
	location *time.Location
	mailer   Mailer
	now      func() time.Time
}

func NewService(repo Repository, led ledger.Ledger, location *time.Location, mailer Mailer) *Service {
	return &Service{
		repo:     repo,
		ledger:   led,
		location: location,
		mailer:   mailer,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Appointment, error) {
	loc, err := resolveLocation(req.Country, req.State, req.District, req.Area)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now().In(s.location)
	past, err := schedule.IsDatePast(req.Date, s.location, now)
	if err != nil {
		return Appointment{}, err
	}
	if past {
		return Appointment{}, ErrPastDate
	}
	if !schedule.IsSlotAllowed(req.Time) {
		return Appointment{}, ErrSlotNotBookable
	}
	if schedule.IsDateToday(req.Date, s.location, now) {
		slotPast, err := schedule.IsSlotPast(req.Date, req.Time, s.location, now)
		if err != nil {
			return Appointment{}, err
		}
		if slotPast {
			return Appointment{}, ErrSlotNotBookable
		}
	}

	doctor, ok := directory.ByID(directory.Generate(loc), req.DoctorID)
	if !ok {
		return Appointment{}, ErrDoctorNotFound
	}

	date, _ := schedule.ParseDate(req.Date, s.location)
	if !worksOn(doctor, date.Weekday().String()) {
		return Appointment{}, ErrDoctorUnavailable
	}

	if _, err := s.ledger.Reserve(ctx, doctor.ID, req.Date, req.Time, strings.TrimSpace(req.Phone)); err != nil {
		return Appointment{}, err
	}

	// A persist failure here strands the reserved slot: the ledger is
	// append-only and has no release, so the slot stays blocked with no
	// appointment behind it.
	appt := s.buildAppointment(loc, doctor, req.Name, req.Email, req.Phone, req.Date, req.Time, req.Reason, false, now)
	if err := s.repo.Create(ctx, appt); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

// CreateEmergency books a same-day slot on the emergency grid. Weekday
// availability is not checked: emergency intake accepts any doctor at the
// location.
func (s *Service) CreateEmergency(ctx context.Context, req EmergencyRequest) (Appointment, error) {
	loc, err := resolveLocation(req.Country, req.State, req.District, req.Area)
	if err != nil {
		return Appointment{}, err
	}

	now := s.now().In(s.location)
	if !schedule.IsEmergencySlotAllowed(req.Time, now, s.location) {
		return Appointment{}, ErrSlotNotBookable
	}

	doctor, ok := directory.ByID(directory.Generate(loc), req.DoctorID)
	if !ok {
		return Appointment{}, ErrDoctorNotFound
	}

	date := now.Format("2006-01-02")
	if _, err := s.ledger.Reserve(ctx, doctor.ID, date, req.Time, strings.TrimSpace(req.Phone)); err != nil {
		return Appointment{}, err
	}

	// Same stranded-slot caveat as Create on persist failure.
	appt := s.buildAppointment(loc, doctor, req.Name, req.Email, req.Phone, date, req.Time, req.Reason, true, now)
	if err := s.repo.Create(ctx, appt); err != nil {
		return Appointment{}, err
	}
	return appt, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	appt, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return appt, nil
}

func (s *Service) Lookup(ctx context.Context, req LookupRequest) (Appointment, error) {
	appt, err := s.repo.FindByPhoneAndNumber(ctx, strings.TrimSpace(req.Phone), strings.TrimSpace(req.AppointmentNumber))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return appt, nil
}

func (s *Service) ListAdmin(ctx context.Context, limit, offset int64) ([]Appointment, int64, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) NotifyConfirmation(ctx context.Context, appt Appointment) error {
	if s.mailer == nil {
		return nil
	}
	if strings.TrimSpace(appt.Email) == "" {
		return nil
	}
	_, err := s.mailer.SendAppointmentConfirmation(ctx, appt)
	return err
}

func (s *Service) buildAppointment(loc catalog.Location, doctor directory.Doctor, name, email, phone, date, timeStr, reason string, emergency bool, now time.Time) Appointment {
	wait := doctor.WaitTime
	if emergency {
		wait = 5 + rand.Intn(20)
	}

	return Appointment{
		ID:                primitive.NewObjectID().Hex(),
		AppointmentNumber: newAppointmentNumber(),
		Name:              strings.TrimSpace(name),
		Email:             strings.TrimSpace(email),
		Phone:             strings.TrimSpace(phone),
		Country:           loc.Country,
		State:             loc.State,
		District:          loc.District,
		Area:              loc.Area,
		DoctorID:          doctor.ID,
		DoctorName:        doctor.Name,
		Specialty:         doctor.Specialty,
		Clinic:            doctor.Clinic,
		Date:              date,
		Time:              timeStr,
		Reason:            strings.TrimSpace(reason),
		Fee:               doctor.Fee,
		WaitTime:          wait,
		Emergency:         emergency,
		Status:            models.AppointmentStatusConfirmed,
		CreatedAt:         now,
	}
}

func resolveLocation(country, state, district, area string) (catalog.Location, error) {
	loc := catalog.Location{
		Country:  strings.TrimSpace(country),
		State:    strings.TrimSpace(state),
		District: strings.TrimSpace(district),
		Area:     strings.TrimSpace(area),
	}
	if loc.Country == "" {
		loc.Country = "India"
	}
	if !catalog.HasState(loc.State) {
		return catalog.Location{}, ErrUnknownLocation
	}
	if !catalog.DistrictInState(loc.State, loc.District) {
		return catalog.Location{}, ErrUnknownLocation
	}
	if !catalog.AreaInDistrict(loc.District, loc.Area) {
		return catalog.Location{}, ErrUnknownLocation
	}
	return loc, nil
}

func worksOn(doctor directory.Doctor, weekday string) bool {
	for _, day := range doctor.AvailableDays {
		if day == weekday {
			return true
		}
	}
	return false
}

func newAppointmentNumber() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
