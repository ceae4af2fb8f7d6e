package appointments

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"arogya-backend/internal/cache"
	"arogya-backend/internal/httpx"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/middleware"
	"arogya-backend/internal/schedule"
	"arogya-backend/internal/transport"
	"arogya-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	cache   cache.Cache
	log     *slog.Logger
}

func NewHandler(service *Service, val *validation.Validator, c cache.Cache, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		val:     val,
		cache:   c,
		log:     log,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req CreateRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("appointment create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("appointment create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	appt, err := h.service.Create(ctx, req)
	if err != nil {
		h.writeCreateError(w, log, "appointment create", err)
		return
	}

	h.invalidateSlots(r.Context(), appt)
	h.notifyAsync(appt)

	log.Info("appointment create: ok",
		slog.String("appointment_id", appt.ID),
		slog.Int("doctor_id", appt.DoctorID),
		slog.String("date", appt.Date),
		slog.String("time", appt.Time),
	)
	transport.WriteJSON(w, http.StatusCreated, appt)
}

func (h *Handler) CreateEmergency(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req EmergencyRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("emergency create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("emergency create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	appt, err := h.service.CreateEmergency(ctx, req)
	if err != nil {
		h.writeCreateError(w, log, "emergency create", err)
		return
	}

	h.invalidateSlots(r.Context(), appt)
	h.notifyAsync(appt)

	log.Info("emergency create: ok",
		slog.String("appointment_id", appt.ID),
		slog.Int("doctor_id", appt.DoctorID),
		slog.String("time", appt.Time),
	)
	transport.WriteJSON(w, http.StatusCreated, appt)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("appointment get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("appointment get: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointment get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("appointment get: ok", slog.String("appointment_id", id))
	transport.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LookupRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("appointment lookup: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("appointment lookup: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	appt, err := h.service.Lookup(ctx, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("appointment lookup: not found")
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointment lookup: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("appointment lookup: ok", slog.String("appointment_id", appt.ID))
	transport.WriteJSON(w, http.StatusOK, appt)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 20, 100)
	if err != nil {
		log.Warn("admin appointment list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.ListAdmin(ctx, limit, offset)
	if err != nil {
		log.Error("admin appointment list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin appointment list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (h *Handler) writeCreateError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, ErrUnknownLocation):
		transport.WriteError(w, http.StatusBadRequest, "unknown location", nil)
	case errors.Is(err, ErrDoctorNotFound):
		transport.WriteError(w, http.StatusNotFound, "doctor not found", nil)
	case errors.Is(err, ErrDoctorUnavailable):
		transport.WriteError(w, http.StatusConflict, "doctor not available on that day", nil)
	case errors.Is(err, ErrPastDate), errors.Is(err, schedule.ErrInvalidDate), errors.Is(err, schedule.ErrInvalidTime):
		transport.WriteError(w, http.StatusBadRequest, "invalid date or time", nil)
	case errors.Is(err, ErrSlotNotBookable):
		transport.WriteError(w, http.StatusBadRequest, "slot not bookable", nil)
	case errors.Is(err, ledger.ErrSlotTaken):
		log.Warn(op + ": slot already booked")
		transport.WriteError(w, http.StatusConflict, "slot already booked", nil)
	default:
		log.Error(op+": database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
	}
}

func (h *Handler) invalidateSlots(ctx context.Context, appt Appointment) {
	if h.cache == nil {
		return
	}
	_ = h.cache.DeletePrefix(ctx, "slots:"+strconv.Itoa(appt.DoctorID)+":"+appt.Date+":")
	_ = h.cache.DeletePrefix(ctx, "doctors:")
}

func (h *Handler) notifyAsync(appt Appointment) {
	go func(created Appointment) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		if err := h.service.NotifyConfirmation(notifyCtx, created); err != nil {
			h.log.Warn("appointment confirmation email failed",
				slog.String("appointment_id", created.ID),
				slog.String("email", created.Email),
				slog.String("error", err.Error()),
			)
		}
	}(appt)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
