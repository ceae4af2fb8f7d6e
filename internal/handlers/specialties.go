package handlers

import (
	"net/http"

	"arogya-backend/internal/directory"
	"arogya-backend/internal/transport"
)

func (s *Server) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"specialties": directory.Specialties,
	})
}
