package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
)

// DateLayout is the yyyyMMdd layout used for reservation dates on the wire
const DateLayout = "20060102"

// DailyPeriods is the fixed schedule every venue offers each day.
// It is venue-independent; per-venue opening hours are not modelled yet.
var DailyPeriods = []string{
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
	"18:00-20:00",
}

// ClockTime is a wall-clock time of day
type ClockTime struct {
	Hour   int
	Minute int
}

// TimeSlot is a period within a day, e.g. "10:00-12:00"
type TimeSlot struct {
	Start ClockTime
	End   ClockTime
}

// ParseTimeSlot parses a "HH:MM-HH:MM" period
func ParseTimeSlot(s string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("%w: %q", errs.ErrInvalidTimeSlot, s)
	}

	start, err := parseClockTime(parts[0])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", errs.ErrInvalidTimeSlot, s)
	}
	end, err := parseClockTime(parts[1])
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", errs.ErrInvalidTimeSlot, s)
	}

	return TimeSlot{Start: start, End: end}, nil
}

// String formats the slot back into its wire form
func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", s.Start.Hour, s.Start.Minute, s.End.Hour, s.End.Minute)
}

func parseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		// "24:00" is a valid end of day but not a valid time.Parse input
		if strings.TrimSpace(s) == "24:00" {
			return ClockTime{Hour: 24}, nil
		}
		return ClockTime{}, err
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseDate validates a yyyyMMdd date string
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil || len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", errs.ErrInvalidDate, s)
	}
	return d, nil
}

// FreePeriods returns the periods of the daily schedule not present in reserved,
// keeping the schedule order
func FreePeriods(reserved map[string]bool) []string {
	free := make([]string, 0, len(DailyPeriods))
	for _, period := range DailyPeriods {
		if !reserved[period] {
			free = append(free, period)
		}
	}
	return free
}
