package handlers

import (
	"log/slog"
	"net/http"

	"arogya-backend/internal/auth"
	"arogya-backend/internal/cache"
	"arogya-backend/internal/config"
	"arogya-backend/internal/db"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/middleware"
	"arogya-backend/internal/validation"
)

type Server struct {
	Cfg    *config.Config
	Cols   *db.Collections
	Val    *validation.Validator
	Log    *slog.Logger
	Cache  cache.Cache
	Ledger ledger.Ledger
	JWT    *auth.Manager
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
