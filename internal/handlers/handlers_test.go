package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"arogya-backend/internal/auth"
	"arogya-backend/internal/cache"
	"arogya-backend/internal/catalog"
	"arogya-backend/internal/config"
	"arogya-backend/internal/directory"
	"arogya-backend/internal/ledger"
	"arogya-backend/internal/middleware"
	"arogya-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

var handlerTestLocation = catalog.Location{
	Country:  "India",
	State:    "Maharashtra",
	District: "Mumbai City",
	Area:     "Dadar",
}

func newTestServer(t *testing.T) (*Server, *ledger.MemoryLedger) {
	t.Helper()
	tz, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	led := ledger.NewMemory()
	srv := &Server{
		Cfg: &config.Config{
			Timezone:        tz,
			CacheTTLSeconds: 60,
			AdminUser:       "admin",
			AdminPassword:   "secret",
			JWTSecret:       "test-secret",
		},
		Val:    validation.New(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache:  cache.NewNoop(),
		Ledger: led,
		JWT: &auth.Manager{
			Secret:     []byte("test-secret"),
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
			Issuer:     "arogya-backend",
		},
	}
	return srv, led
}

func testRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/locations/states", s.ListStates)
	r.Get("/api/locations/states/{state}/districts", s.ListDistricts)
	r.Get("/api/locations/districts/{district}/areas", s.ListAreas)
	r.Get("/api/locations/coordinates", s.GetCoordinates)
	r.Get("/api/specialties", s.ListSpecialties)
	r.Get("/api/doctors", s.ListDoctors)
	r.Get("/api/doctors/{id}/slots", s.GetDoctorSlots)
	r.Post("/api/symptoms/analyze", s.AnalyzeSymptoms)
	r.Post("/api/admin/login", s.AdminLogin)
	r.Post("/api/admin/refresh", s.AdminRefresh)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestListStates(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/locations/states", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	payload := decodeBody(t, rec)
	states, ok := payload["states"].([]interface{})
	if !ok || len(states) == 0 {
		t.Fatal("no states in response")
	}
	found := false
	for _, s := range states {
		if s == "Maharashtra" {
			found = true
		}
	}
	if !found {
		t.Fatal("Maharashtra missing from states")
	}
}

func TestListDistrictsUnknownState(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/locations/states/Narnia/districts", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetCoordinates(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/locations/coordinates?state=Maharashtra&district=Mumbai+City&area=Dadar", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	coords, ok := payload["coordinates"].([]interface{})
	if !ok || len(coords) != 2 {
		t.Fatalf("coordinates = %v", payload["coordinates"])
	}

	rec = doRequest(t, testRouter(srv), http.MethodGet, "/api/locations/coordinates", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing state status = %d, want 400", rec.Code)
	}
}

func TestListSpecialties(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/specialties", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	specialties, ok := payload["specialties"].([]interface{})
	if !ok || len(specialties) != len(directory.Specialties) {
		t.Fatalf("specialties count = %d, want %d", len(specialties), len(directory.Specialties))
	}
}

func TestListDoctors(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/doctors?state=Maharashtra&district=Mumbai+City&area=Dadar", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	doctors, ok := payload["doctors"].([]interface{})
	if !ok || len(doctors) < 10 || len(doctors) > 24 {
		t.Fatalf("doctor count = %d, want 10..24", len(doctors))
	}

	rec = doRequest(t, testRouter(srv), http.MethodGet, "/api/doctors?state=Maharashtra&district=Mumbai+City&area=Nowhere", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown area status = %d, want 400", rec.Code)
	}
}

// Specialties only the matcher knows are valid queries; the exact filter
// just comes back empty for them.
func TestListDoctorsTriageSpecialty(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet, "/api/doctors?state=Maharashtra&district=Mumbai+City&area=Dadar&specialty=Pulmonologist", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	payload := decodeBody(t, rec)
	doctors, ok := payload["doctors"].([]interface{})
	if !ok {
		t.Fatal("no doctors array in response")
	}
	if len(doctors) != 0 {
		t.Fatalf("generator never assigns Pulmonologist, got %d doctors", len(doctors))
	}

	rec = doRequest(t, testRouter(srv), http.MethodGet, "/api/doctors?state=Maharashtra&district=Mumbai+City&area=Dadar&specialty=Astrologist", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown specialty status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeSymptoms(t *testing.T) {
	srv, _ := newTestServer(t)
	body := []byte(`{"symptoms":"chest pain and palpitations","state":"Maharashtra","district":"Mumbai City","area":"Dadar"}`)
	rec := doRequest(t, testRouter(srv), http.MethodPost, "/api/symptoms/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["specialty"] != "Cardiologist" {
		t.Fatalf("specialty = %v, want Cardiologist", payload["specialty"])
	}
	if payload["explanation"] == "" {
		t.Fatal("empty explanation")
	}
	doctors, ok := payload["doctors"].([]interface{})
	if !ok {
		t.Fatal("no doctors in response")
	}
	if len(doctors) > 5 {
		t.Fatalf("recommended %d doctors, want at most 5", len(doctors))
	}
}

// Pulmonologist is suggested by the matcher but never generated, so the
// recommendations must come from the general-physician pool instead of
// being empty.
func TestAnalyzeSymptomsUngeneratedSpecialty(t *testing.T) {
	srv, _ := newTestServer(t)
	body := []byte(`{"symptoms":"asthma and lung problems, difficulty breathing","state":"Maharashtra","district":"Mumbai City","area":"Dadar"}`)
	rec := doRequest(t, testRouter(srv), http.MethodPost, "/api/symptoms/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["specialty"] != "Pulmonologist" {
		t.Fatalf("specialty = %v, want Pulmonologist", payload["specialty"])
	}
	doctors, ok := payload["doctors"].([]interface{})
	if !ok || len(doctors) == 0 {
		t.Fatal("no recommended doctors for an ungenerated specialty")
	}
	if len(doctors) > 5 {
		t.Fatalf("recommended %d doctors, want at most 5", len(doctors))
	}
}

func TestAnalyzeSymptomsNoLocation(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodPost, "/api/symptoms/analyze", []byte(`{"symptoms":"rash and itching"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	payload := decodeBody(t, rec)
	if payload["specialty"] != "Dermatologist" {
		t.Fatalf("specialty = %v, want Dermatologist", payload["specialty"])
	}
	if _, ok := payload["doctors"]; ok {
		t.Fatal("doctors present without a location")
	}
}

func TestAnalyzeSymptomsValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodPost, "/api/symptoms/analyze", []byte(`{}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// nextWorkday returns the first date within a week the doctor works.
func nextWorkday(t *testing.T, doctor directory.Doctor, tz *time.Location) string {
	t.Helper()
	now := time.Now().In(tz)
	for i := 1; i <= 7; i++ {
		day := now.AddDate(0, 0, i)
		if doctorWorksOn(doctor, day.Weekday().String()) {
			return day.Format("2006-01-02")
		}
	}
	t.Fatalf("doctor %d has no workday in the next week", doctor.ID)
	return ""
}

func TestGetDoctorSlots(t *testing.T) {
	srv, led := newTestServer(t)
	doctor := directory.Generate(handlerTestLocation)[0]
	date := nextWorkday(t, doctor, srv.Cfg.Timezone)

	target := "/api/doctors/" + strconv.Itoa(doctor.ID) + "/slots?date=" + date +
		"&state=Maharashtra&district=Mumbai+City&area=Dadar"
	rec := doRequest(t, testRouter(srv), http.MethodGet, target, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	slots, ok := payload["slots"].([]interface{})
	if !ok || len(slots) == 0 {
		t.Fatal("no slots for a workday")
	}

	// Booked slots disappear from the listing.
	booked, _ := slots[0].(string)
	if _, err := led.Reserve(context.Background(), doctor.ID, date, booked, ""); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	rec = doRequest(t, testRouter(srv), http.MethodGet, target, nil)
	payload = decodeBody(t, rec)
	for _, s := range payload["slots"].([]interface{}) {
		if s == booked {
			t.Fatalf("booked slot %q still listed", booked)
		}
	}
}

func TestGetDoctorSlotsPastDate(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodGet,
		"/api/doctors/1/slots?date=2020-01-01&state=Maharashtra&district=Mumbai+City&area=Dadar", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetDoctorSlotsUnknownDoctor(t *testing.T) {
	srv, _ := newTestServer(t)
	doctor := directory.Generate(handlerTestLocation)[0]
	date := nextWorkday(t, doctor, srv.Cfg.Timezone)
	rec := doRequest(t, testRouter(srv), http.MethodGet,
		"/api/doctors/999/slots?date="+date+"&state=Maharashtra&district=Mumbai+City&area=Dadar", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	srv, _ := newTestServer(t)
	router := testRouter(srv)

	rec := doRequest(t, router, http.MethodPost, "/api/admin/login", []byte(`{"username":"admin","password":"wrong"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad creds status = %d, want 401", rec.Code)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/admin/login", []byte(`{"username":"admin","password":"secret"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	var access *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AccessCookie {
			access = c
		}
	}
	if access == nil || access.Value == "" {
		t.Fatal("no access cookie set")
	}

	claims, err := srv.JWT.Parse(access.Value)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
}

func TestAdminRefreshMissingCookie(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, testRouter(srv), http.MethodPost, "/api/admin/refresh", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
