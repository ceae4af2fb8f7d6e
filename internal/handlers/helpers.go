package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"arogya-backend/internal/catalog"
)

func writeCachedJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func encodeJSON(payload interface{}) ([]byte, error) {
	return json.Marshal(payload)
}

// locationFromValues resolves a state/district/area triple against the
// catalog. ok is false when any level is missing or unknown.
func locationFromValues(state, district, area string) (catalog.Location, bool) {
	loc := catalog.Location{
		Country:  "India",
		State:    strings.TrimSpace(state),
		District: strings.TrimSpace(district),
		Area:     strings.TrimSpace(area),
	}
	if loc.State == "" || loc.District == "" || loc.Area == "" {
		return catalog.Location{}, false
	}
	if !catalog.HasState(loc.State) {
		return catalog.Location{}, false
	}
	if !catalog.DistrictInState(loc.State, loc.District) {
		return catalog.Location{}, false
	}
	if !catalog.AreaInDistrict(loc.District, loc.Area) {
		return catalog.Location{}, false
	}
	return loc, true
}
