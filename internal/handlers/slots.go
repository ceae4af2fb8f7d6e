package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"arogya-backend/internal/directory"
	"arogya-backend/internal/recommend"
	"arogya-backend/internal/schedule"
	"arogya-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

type slotsQuery struct {
	Date string `validate:"required,date"`
}

// GetDoctorSlots lists open slots for a doctor and date, best slot first.
// With emergency=true the date is forced to today and the walk-in grid is
// used instead of the regular one.
func (s *Server) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	doctorID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || doctorID <= 0 {
		log.Warn("slots: invalid doctor id")
		transport.WriteError(w, http.StatusBadRequest, "invalid doctor id", nil)
		return
	}

	q := r.URL.Query()
	loc, ok := locationFromValues(q.Get("state"), q.Get("district"), q.Get("area"))
	if !ok {
		log.Warn("slots: unknown location")
		transport.WriteError(w, http.StatusBadRequest, "unknown location", nil)
		return
	}

	emergency := strings.EqualFold(q.Get("emergency"), "true")
	now := time.Now().In(s.Cfg.Timezone)

	var date string
	var grid []string
	if emergency {
		date = now.Format("2006-01-02")
		grid = schedule.EmergencySlots(now, s.Cfg.Timezone)
	} else {
		sq := slotsQuery{Date: q.Get("date")}
		if err := s.Val.Struct(sq); err != nil {
			log.Warn("slots: invalid query")
			transport.WriteError(w, http.StatusBadRequest, "invalid query", validationDetails(s.Val.ValidationErrors(err)))
			return
		}
		date = sq.Date

		past, err := schedule.IsDatePast(date, s.Cfg.Timezone, now)
		if err != nil {
			transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
			return
		}
		if past {
			log.Warn("slots: date in the past", slog.String("date", date))
			transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
			return
		}
		grid = schedule.BaseSlots()
	}

	cacheKey := "slots:" + strconv.Itoa(doctorID) + ":" + date + ":" + loc.State + ":" + loc.District + ":" + loc.Area + ":" + strconv.FormatBool(emergency)
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("slots: cache hit", slog.Int("doctor_id", doctorID), slog.String("date", date))
			writeCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	doctor, ok := directory.ByID(directory.Generate(loc), doctorID)
	if !ok {
		log.Warn("slots: doctor not found", slog.Int("doctor_id", doctorID))
		transport.WriteError(w, http.StatusNotFound, "doctor not found", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	open := grid
	if !emergency {
		day, _ := schedule.ParseDate(date, s.Cfg.Timezone)
		if !doctorWorksOn(doctor, day.Weekday().String()) {
			open = nil
		} else if schedule.IsDateToday(date, s.Cfg.Timezone, now) {
			open = dropPastSlots(open, date, s.Cfg.Timezone, now)
		}
	}

	reserved, err := s.reservedTimes(ctx, doctorID, date)
	if err != nil {
		log.Error("slots: ledger error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}
	open = schedule.FilterReserved(open, reserved)
	ranked := recommend.RankSlots(doctorID, date, open, s.doctorBookings(ctx, doctorID))

	response := map[string]interface{}{
		"doctorId":  doctorID,
		"date":      date,
		"emergency": emergency,
		"timezone":  s.Cfg.Timezone.String(),
		"slots":     ranked,
	}

	if payload, err := encodeJSON(response); err == nil && s.Cache != nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("slots: ok",
		slog.Int("doctor_id", doctorID),
		slog.String("date", date),
		slog.Int("open", len(ranked)),
	)
	transport.WriteJSON(w, http.StatusOK, response)
}

func (s *Server) reservedTimes(ctx context.Context, doctorID int, date string) (map[string]bool, error) {
	booked, err := s.Ledger.ForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	reserved := make(map[string]bool)
	for _, slot := range booked {
		if slot.Date == date {
			reserved[slot.Time] = true
		}
	}
	return reserved, nil
}

func dropPastSlots(slots []string, date string, loc *time.Location, now time.Time) []string {
	remaining := make([]string, 0, len(slots))
	for _, slot := range slots {
		past, err := schedule.IsSlotPast(date, slot, loc, now)
		if err != nil || past {
			continue
		}
		remaining = append(remaining, slot)
	}
	return remaining
}

func doctorWorksOn(doctor directory.Doctor, weekday string) bool {
	for _, day := range doctor.AvailableDays {
		if day == weekday {
			return true
		}
	}
	return false
}
