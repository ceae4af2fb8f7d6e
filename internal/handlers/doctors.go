package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"arogya-backend/internal/directory"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/recommend"
	"arogya-backend/internal/transport"
	"arogya-backend/internal/triage"
)

func (s *Server) ListDoctors(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := r.URL.Query()

	loc, ok := locationFromValues(q.Get("state"), q.Get("district"), q.Get("area"))
	if !ok {
		log.Warn("doctors: unknown location")
		transport.WriteError(w, http.StatusBadRequest, "unknown location", nil)
		return
	}

	// Triage can suggest specialties the generator never assigns; those are
	// valid queries that return an empty list.
	specialty := strings.TrimSpace(q.Get("specialty"))
	if specialty != "" && !directory.IsKnownSpecialty(specialty) && !triage.IsKnownSpecialty(specialty) {
		log.Warn("doctors: unknown specialty", slog.String("specialty", specialty))
		transport.WriteError(w, http.StatusBadRequest, "unknown specialty", nil)
		return
	}

	cacheKey := "doctors:" + loc.State + ":" + loc.District + ":" + loc.Area + ":" + specialty
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("doctors: cache hit", slog.String("area", loc.Area))
			writeCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	doctors := directory.FilterBySpecialty(directory.Generate(loc), specialty)
	ranked := recommend.RankDoctors(doctors, recommend.Context{Location: loc}, s.busynessFunc(ctx))

	response := map[string]interface{}{
		"location": loc,
		"doctors":  ranked,
	}

	if payload, err := encodeJSON(response); err == nil && s.Cache != nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("doctors: ok",
		slog.String("area", loc.Area),
		slog.String("specialty", specialty),
		slog.Int("count", len(ranked)),
	)
	transport.WriteJSON(w, http.StatusOK, response)
}

// busynessFunc feeds booking pressure into the doctor ranking. Ledger errors
// read as zero busyness so ranking degrades instead of failing.
func (s *Server) busynessFunc(ctx context.Context) recommend.BusynessFunc {
	return func(doctorID int) int {
		bookings, err := s.Ledger.ForDoctor(ctx, doctorID)
		if err != nil {
			return 0
		}
		return ledger.Busyness(bookings, time.Now())
	}
}

func (s *Server) doctorBookings(ctx context.Context, doctorID int) []recommend.Booking {
	slots, err := s.Ledger.ForDoctor(ctx, doctorID)
	if err != nil {
		return nil
	}
	bookings := make([]recommend.Booking, 0, len(slots))
	for _, slot := range slots {
		bookings = append(bookings, recommend.Booking{Date: slot.Date, Time: slot.Time})
	}
	return bookings
}
