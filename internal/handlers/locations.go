package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"arogya-backend/internal/catalog"
	"arogya-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListStates(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"country": "India",
		"states":  catalog.States(),
	})
}

func (s *Server) ListDistricts(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	state := strings.TrimSpace(chi.URLParam(r, "state"))
	if !catalog.HasState(state) {
		log.Warn("districts: unknown state", slog.String("state", state))
		transport.WriteError(w, http.StatusNotFound, "unknown state", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state":     state,
		"districts": catalog.Districts(state),
	})
}

// ListAreas falls back to a generic area list for districts without a curated
// one, mirroring the catalog.
func (s *Server) ListAreas(w http.ResponseWriter, r *http.Request) {
	district := strings.TrimSpace(chi.URLParam(r, "district"))
	if district == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing district", nil)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"district": district,
		"areas":    catalog.Areas(district),
	})
}

func (s *Server) GetCoordinates(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := r.URL.Query()
	state := strings.TrimSpace(q.Get("state"))
	district := strings.TrimSpace(q.Get("district"))
	area := strings.TrimSpace(q.Get("area"))

	if state == "" {
		log.Warn("coordinates: missing state")
		transport.WriteError(w, http.StatusBadRequest, "missing state", nil)
		return
	}

	var coords [2]float64
	switch {
	case area != "" && district != "":
		coords = catalog.AreaCoordinates(state, district, area)
	case district != "":
		coords = catalog.DistrictCoordinates(state, district)
	default:
		coords = catalog.StateCoordinates(state)
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"state":       state,
		"district":    district,
		"area":        area,
		"coordinates": coords,
	})
}
