package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"arogya-backend/internal/directory"
	"arogya-backend/internal/recommend"
	"arogya-backend/internal/transport"
	"arogya-backend/internal/triage"
)

const maxRecommendedDoctors = 5

type analyzeRequest struct {
	Symptoms string `json:"symptoms" validate:"required"`
	State    string `json:"state"`
	District string `json:"district"`
	Area     string `json:"area"`
}

// AnalyzeSymptoms maps free-text symptoms to a specialty. When the request
// carries a known location, the response also recommends doctors of that
// specialty there.
func (s *Server) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("symptom analyze: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("symptom analyze: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", validationDetails(s.Val.ValidationErrors(err)))
		return
	}

	match := triage.Analyze(req.Symptoms)

	response := map[string]interface{}{
		"specialty":   match.Specialty,
		"confidence":  match.Confidence,
		"explanation": triage.Explanation(match, req.Symptoms),
	}

	if loc, ok := locationFromValues(req.State, req.District, req.Area); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		doctors := directory.RecommendationPool(directory.Generate(loc), match.Specialty)
		ranked := recommend.RankDoctors(doctors, recommend.Context{Location: loc, Salt: req.Symptoms}, s.busynessFunc(ctx))
		if len(ranked) > maxRecommendedDoctors {
			ranked = ranked[:maxRecommendedDoctors]
		}
		response["doctors"] = ranked
	}

	log.Info("symptom analyze: ok",
		slog.String("specialty", match.Specialty),
		slog.Float64("confidence", match.Confidence),
	)
	transport.WriteJSON(w, http.StatusOK, response)
}
