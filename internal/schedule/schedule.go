package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slots are 12-hour clock strings ("9:00 AM") in 30-minute steps, matching
// the wire and ledger format of the booking flow.
const SlotMinutes = 30

// emergencyEndHour closes the same-day emergency grid at 10 PM.
const emergencyEndHour = 22

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")
)

// baseSlots is the regular bookable grid: mornings 9:00-11:30, afternoons
// 2:00-4:30.
var baseSlots = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "2:00 PM", "2:30 PM",
	"3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM",
}

func BaseSlots() []string {
	out := make([]string, len(baseSlots))
	copy(out, baseSlots)
	return out
}

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// ParseClock12ToMinutes converts "9:30 AM" to minutes since midnight.
func ParseClock12ToMinutes(timeStr string) (int, error) {
	parts := strings.Fields(strings.TrimSpace(timeStr))
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}
	meridiem := strings.ToUpper(parts[1])
	if meridiem != "AM" && meridiem != "PM" {
		return 0, ErrInvalidTime
	}

	clock := strings.SplitN(parts[0], ":", 2)
	if len(clock) != 2 {
		return 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(clock[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, ErrInvalidTime
	}
	minute, err := strconv.Atoi(clock[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidTime
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// MinutesToClock12 is the inverse of ParseClock12ToMinutes.
func MinutesToClock12(minutes int) string {
	hour := minutes / 60
	minute := minutes % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	startToday := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return date.Before(startToday), nil
}

func IsDateToday(dateStr string, loc *time.Location, now time.Time) bool {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false
	}
	local := now.In(loc)
	return date.Year() == local.Year() && date.YearDay() == local.YearDay()
}

func IsSlotPast(dateStr, timeStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	minutes, err := ParseClock12ToMinutes(timeStr)
	if err != nil {
		return false, err
	}
	slot := date.Add(time.Duration(minutes) * time.Minute)
	return !slot.After(now.In(loc)), nil
}

func IsSlotAllowed(timeStr string) bool {
	for _, s := range baseSlots {
		if s == timeStr {
			return true
		}
	}
	return false
}

// EmergencySlots lists today's remaining 30-minute slots: from the next
// half-hour boundary after now until 10 PM.
func EmergencySlots(now time.Time, loc *time.Location) []string {
	local := now.In(loc)
	cursor := local.Hour()*60 + local.Minute()
	if cursor%SlotMinutes != 0 {
		cursor += SlotMinutes - cursor%SlotMinutes
	} else {
		cursor += SlotMinutes
	}

	slots := make([]string, 0)
	for ; cursor < emergencyEndHour*60; cursor += SlotMinutes {
		slots = append(slots, MinutesToClock12(cursor))
	}
	return slots
}

// IsEmergencySlotAllowed reports whether timeStr is on today's emergency grid.
func IsEmergencySlotAllowed(timeStr string, now time.Time, loc *time.Location) bool {
	for _, s := range EmergencySlots(now, loc) {
		if s == timeStr {
			return true
		}
	}
	return false
}

// FilterReserved drops slots present in the reserved set.
func FilterReserved(slots []string, reserved map[string]bool) []string {
	filtered := make([]string, 0, len(slots))
	for _, s := range slots {
		if !reserved[s] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
