// Package schedule turns a clinician's working-hours window into bookable
// 30-minute slots and reconciles them against existing bookings.
package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SlotDuration is the fixed length of a bookable slot.
const SlotDuration = 30 * time.Minute

// DateLayout is the wire format for calendar dates.
const DateLayout = "01-02-2006"

const (
	clockLayout   = "3:04 PM"
	displayLayout = "Monday, January 2, 2006"

	// lunchHour excludes slots starting within [13:00, 14:00) regardless of
	// the window bounds.
	lunchHour = 13
)

var clockLayouts = []string{"3:04 PM", "3 PM", "3:04PM", "3PM"}

// TimeSlot is a single bookable interval on a given date.
type TimeSlot struct {
	Time   string `json:"time"`
	Booked bool   `json:"is_booked"`
}

// DaySlots is a calendar date with its full annotated slot list. Fully
// booked days are listed with Available == 0, not hidden; hiding is a
// presentation choice left to the caller.
type DaySlots struct {
	Date        string     `json:"date"`
	DisplayName string     `json:"display_name"`
	Slots       []TimeSlot `json:"time_slots"`
	Available   int        `json:"total_available_slots"`
}

// FreeSlots returns only the unbooked slots, in order.
func (d DaySlots) FreeSlots() []TimeSlot {
	free := make([]TimeSlot, 0, len(d.Slots))
	for _, s := range d.Slots {
		if !s.Booked {
			free = append(free, s)
		}
	}
	return free
}

// BookedLookup fetches the already-booked times for a (doctor, date) pair.
type BookedLookup func(ctx context.Context, doctorID, date string) ([]string, error)

// ParseClock parses a time-of-day in "h:mm AM/PM" or "h AM/PM" form.
func ParseClock(s string) (time.Time, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("schedule: unrecognized clock time %q", s)
}

// FormatClock renders a time-of-day in the canonical "h:mm AM/PM" form.
func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// DefaultSlots is the fixed fallback list used when a working-hours window
// cannot be parsed: ten half-hour slots between 10:00 AM and 3:30 PM, with
// the lunch hour already excluded.
func DefaultSlots() []string {
	return []string{
		"10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"12:00 PM", "12:30 PM",
		"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM",
	}
}

// Generate produces the ordered slot start times for a working-hours window.
// The start is rounded up to the next 30-minute boundary, slots starting in
// the lunch hour are excluded, and a slot is kept only if it ends on or
// before the window end. An unparseable bound falls back to DefaultSlots
// rather than failing.
func Generate(start, end string) []string {
	windowStart, errStart := ParseClock(start)
	windowEnd, errEnd := ParseClock(end)
	if errStart != nil || errEnd != nil {
		return DefaultSlots()
	}

	if m := windowStart.Minute() % 30; m != 0 {
		windowStart = windowStart.Add(time.Duration(30-m) * time.Minute)
	}

	var slots []string
	for t := windowStart; t.Before(windowEnd); t = t.Add(SlotDuration) {
		if t.Hour() == lunchHour {
			continue
		}
		if t.Add(SlotDuration).After(windowEnd) {
			continue
		}
		slots = append(slots, FormatClock(t))
	}
	return slots
}

// BuildDay materializes the slot view for one calendar day, marking each
// generated slot against the supplied booked times.
func BuildDay(day time.Time, start, end string, booked []string) DaySlots {
	bookedSet := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		bookedSet[strings.TrimSpace(b)] = struct{}{}
	}

	times := Generate(start, end)
	slots := make([]TimeSlot, 0, len(times))
	available := 0
	for _, ts := range times {
		_, isBooked := bookedSet[ts]
		slots = append(slots, TimeSlot{Time: ts, Booked: isBooked})
		if !isBooked {
			available++
		}
	}

	return DaySlots{
		Date:        day.Format(DateLayout),
		DisplayName: day.Format(displayLayout),
		Slots:       slots,
		Available:   available,
	}
}

// UpcomingDates produces the next 7 calendar dates strictly after now (today
// excluded), each with its annotated slot list. The lookup is optional; when
// nil, all slots are reported free.
func UpcomingDates(ctx context.Context, now time.Time, doctorID, start, end string, lookup BookedLookup) ([]DaySlots, error) {
	days := make([]DaySlots, 0, 7)
	for i := 1; i <= 7; i++ {
		day := now.AddDate(0, 0, i)

		var booked []string
		if lookup != nil && doctorID != "" {
			var err error
			booked, err = lookup(ctx, doctorID, day.Format(DateLayout))
			if err != nil {
				return nil, fmt.Errorf("schedule: booked slots for %s: %w", day.Format(DateLayout), err)
			}
		}

		days = append(days, BuildDay(day, start, end, booked))
	}
	return days, nil
}
