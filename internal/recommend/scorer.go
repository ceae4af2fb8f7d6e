package recommend

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"arogya-backend/internal/catalog"
	"arogya-backend/internal/directory"
	"arogya-backend/internal/schedule"
)

// Context carries everything doctor scoring depends on besides the doctors
// themselves. Salt feeds the deterministic jitter so distinct requests (for
// example different symptom texts) still see some ranking variety.
type Context struct {
	Location catalog.Location
	Salt     string
}

// BusynessFunc reports the booking-load heuristic for a doctor id. A nil
// func scores every doctor as idle.
type BusynessFunc func(doctorID int) int

// Booking is the slice of a ledger record slot scoring needs.
type Booking struct {
	Date string
	Time string
}

const (
	baseScore = 50

	doctorJitterSpan = 5
	slotJitterSpan   = 10
)

// jitter derives a stable pseudo-random value in [0, span) from its keys.
// It replaces the unseeded tie-breaker so identical inputs always rank
// identically.
func jitter(span float64, keys ...string) float64 {
	h := fnv.New64a()
	for _, k := range keys {
		h.Write([]byte(k))
		h.Write([]byte{0})
	}
	return float64(h.Sum64()%100000) / 100000 * span
}

func (c Context) hash() string {
	return c.Location.Area + "|" + c.Location.District + "|" + c.Location.State + "|" + c.Location.Country + "|" + c.Salt
}

// DoctorScore computes the weighted recommendation score for one doctor.
func DoctorScore(d directory.Doctor, ctx Context, busyness int) float64 {
	score := float64(baseScore)

	score += d.Rating * 10

	experience := d.Experience
	if experience > 20 {
		experience = 20
	}
	score += float64(experience) * 1.5

	if d.Available {
		score += 15
	}

	waitPenalty := 20 - float64(d.WaitTime)/3
	if waitPenalty > 0 {
		score += waitPenalty
	}

	busynessPenalty := float64(busyness) * 0.5
	if busynessPenalty > 15 {
		busynessPenalty = 15
	}
	score -= busynessPenalty

	// proximity from the address the generator wrote: "area, district, state"
	parts := strings.Split(d.Address, ", ")
	switch {
	case len(parts) > 0 && parts[0] == ctx.Location.Area:
		score += 15
	case len(parts) > 1 && parts[1] == ctx.Location.District:
		score += 10
	}

	score += jitter(doctorJitterSpan, strconv.Itoa(d.ID), ctx.hash())
	return score
}

// RankDoctors orders doctors by descending recommendation score. The result
// is a permutation of the input; an empty input yields an empty slice.
func RankDoctors(doctors []directory.Doctor, ctx Context, busyness BusynessFunc) []directory.Doctor {
	type scored struct {
		doctor directory.Doctor
		score  float64
	}

	ranked := make([]scored, 0, len(doctors))
	for _, d := range doctors {
		load := 0
		if busyness != nil {
			load = busyness(d.ID)
		}
		ranked = append(ranked, scored{doctor: d, score: DoctorScore(d, ctx, load)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]directory.Doctor, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.doctor)
	}
	return out
}

// SlotScore computes the preference score for one candidate slot. bookings
// are the doctor's existing reservations; a booking on the same date exactly
// 30 minutes away earns the adjacency bonus.
func SlotScore(doctorID int, date, slot string, bookings []Booking) float64 {
	score := float64(baseScore)

	minutes, err := schedule.ParseClock12ToMinutes(slot)
	if err != nil {
		// unparseable slots keep the base score plus jitter
		return score + jitter(slotJitterSpan, strconv.Itoa(doctorID), date, slot)
	}
	hour := minutes / 60

	switch {
	case hour >= 9 && hour <= 11:
		score += 10
	case hour >= 14 && hour <= 15:
		score += 5
	}
	if hour == 13 || hour == 17 {
		score -= 5
	}

	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		booked, err := schedule.ParseClock12ToMinutes(b.Time)
		if err != nil {
			continue
		}
		diff := booked - minutes
		if diff == 30 || diff == -30 {
			score += 8
			break
		}
	}

	score += jitter(slotJitterSpan, strconv.Itoa(doctorID), date, slot)
	return score
}

// RankSlots orders candidate slots by descending preference. Empty input
// yields an empty slice.
func RankSlots(doctorID int, date string, slots []string, bookings []Booking) []string {
	type scored struct {
		slot  string
		score float64
	}

	ranked := make([]scored, 0, len(slots))
	for _, s := range slots {
		ranked = append(ranked, scored{slot: s, score: SlotScore(doctorID, date, s, bookings)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.slot)
	}
	return out
}
