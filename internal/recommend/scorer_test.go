package recommend

import (
	"reflect"
	"sort"
	"testing"

	"arogya-backend/internal/catalog"
	"arogya-backend/internal/directory"
)

func testContext() Context {
	return Context{
		Location: catalog.Location{
			Country:  "India",
			State:    "Maharashtra",
			District: "Mumbai Suburban",
			Area:     "Bandra",
		},
	}
}

func testDoctor(id int) directory.Doctor {
	return directory.Doctor{
		ID:         id,
		Name:       "Dr. Arjun Sharma",
		Specialty:  "Cardiologist",
		Address:    "Bandra, Mumbai Suburban, Maharashtra",
		Available:  true,
		Rating:     4.5,
		Experience: 10,
		WaitTime:   15,
	}
}

func TestRankDoctorsEmpty(t *testing.T) {
	out := RankDoctors(nil, testContext(), nil)
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestRankDoctorsPermutation(t *testing.T) {
	doctors := []directory.Doctor{testDoctor(1), testDoctor(2), testDoctor(3)}
	ranked := RankDoctors(doctors, testContext(), nil)

	if len(ranked) != len(doctors) {
		t.Fatalf("expected %d doctors, got %d", len(doctors), len(ranked))
	}
	ids := make([]int, 0, len(ranked))
	for _, d := range ranked {
		ids = append(ids, d.ID)
	}
	sort.Ints(ids)
	if !reflect.DeepEqual(ids, []int{1, 2, 3}) {
		t.Fatalf("ranking must not invent or drop doctors: %v", ids)
	}
}

func TestRankDoctorsDeterministic(t *testing.T) {
	doctors := []directory.Doctor{testDoctor(1), testDoctor(2), testDoctor(3)}
	first := RankDoctors(doctors, testContext(), nil)
	second := RankDoctors(doctors, testContext(), nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical rankings")
	}
}

func TestAvailableDoctorRanksHigher(t *testing.T) {
	available := testDoctor(1)
	unavailable := testDoctor(2)
	unavailable.Available = false

	// availability is worth 15 points, far beyond the [0,5) jitter span
	ranked := RankDoctors([]directory.Doctor{unavailable, available}, testContext(), nil)
	if ranked[0].ID != available.ID {
		t.Fatalf("available doctor should rank first, got id %d", ranked[0].ID)
	}
}

func TestBusynessPenalty(t *testing.T) {
	idle := testDoctor(1)
	busy := testDoctor(2)

	busyness := func(doctorID int) int {
		if doctorID == busy.ID {
			return 100
		}
		return 0
	}

	ranked := RankDoctors([]directory.Doctor{busy, idle}, testContext(), busyness)
	if ranked[0].ID != idle.ID {
		t.Fatalf("idle doctor should rank first, got id %d", ranked[0].ID)
	}
}

func TestProximityBonus(t *testing.T) {
	ctx := testContext()

	sameArea := testDoctor(1)
	sameDistrict := testDoctor(1)
	sameDistrict.Address = "Andheri, Mumbai Suburban, Maharashtra"
	elsewhere := testDoctor(1)
	elsewhere.Address = "Koramangala, Bengaluru Urban, Karnataka"

	areaScore := DoctorScore(sameArea, ctx, 0)
	districtScore := DoctorScore(sameDistrict, ctx, 0)
	farScore := DoctorScore(elsewhere, ctx, 0)

	if areaScore-farScore != 15 {
		t.Fatalf("expected +15 area bonus, got %v", areaScore-farScore)
	}
	if districtScore-farScore != 10 {
		t.Fatalf("expected +10 district bonus, got %v", districtScore-farScore)
	}
}

func TestRankSlotsEmpty(t *testing.T) {
	if out := RankSlots(1, "2025-01-01", nil, nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestSlotScoreTimeOfDay(t *testing.T) {
	morning := SlotScore(1, "2025-01-01", "10:00 AM", nil)
	afternoon := SlotScore(1, "2025-01-01", "2:00 PM", nil)
	lunch := SlotScore(1, "2025-01-01", "1:00 PM", nil)

	// bonuses dominate the [0,10) jitter span only between the extremes
	if morning-lunch <= 0 {
		t.Fatalf("morning (%v) should outscore lunch (%v)", morning, lunch)
	}
	_ = afternoon
}

func TestSlotScoreAdjacencyBonus(t *testing.T) {
	bookings := []Booking{{Date: "2025-01-01", Time: "10:30 AM"}}

	with := SlotScore(1, "2025-01-01", "10:00 AM", bookings)
	without := SlotScore(1, "2025-01-01", "10:00 AM", nil)
	if with-without != 8 {
		t.Fatalf("expected +8 adjacency bonus, got %v", with-without)
	}

	// a booking on another date is ignored
	otherDate := SlotScore(1, "2025-01-01", "10:00 AM", []Booking{{Date: "2025-01-02", Time: "10:30 AM"}})
	if otherDate != without {
		t.Fatalf("other-date booking must not change the score: %v vs %v", otherDate, without)
	}
}

func TestRankSlotsPermutation(t *testing.T) {
	slots := []string{"9:00 AM", "1:00 PM", "2:30 PM", "4:30 PM"}
	ranked := RankSlots(3, "2025-05-05", slots, nil)

	if len(ranked) != len(slots) {
		t.Fatalf("expected %d slots, got %d", len(slots), len(ranked))
	}
	seen := make(map[string]bool)
	for _, s := range ranked {
		seen[s] = true
	}
	for _, s := range slots {
		if !seen[s] {
			t.Fatalf("slot %s missing from ranking", s)
		}
	}
}
