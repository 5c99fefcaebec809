package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNineToFive(t *testing.T) {
	slots := Generate("9:00 AM", "5:00 PM")

	assert.NotContains(t, slots, "1:00 PM")
	assert.NotContains(t, slots, "1:30 PM")
	assert.Contains(t, slots, "12:30 PM")
	assert.Contains(t, slots, "2:00 PM")

	require.NotEmpty(t, slots)
	assert.Equal(t, "9:00 AM", slots[0])
	// 4:30 PM + 30 minutes lands exactly on the window end, so it is kept.
	assert.Equal(t, "4:30 PM", slots[len(slots)-1])
}

func TestGenerateIsDeterministic(t *testing.T) {
	first := Generate("10:00 AM", "4:00 PM")
	second := Generate("10:00 AM", "4:00 PM")
	assert.Equal(t, first, second)

	seen := make(map[string]struct{}, len(first))
	for _, s := range first {
		_, dup := seen[s]
		assert.False(t, dup, "duplicate slot %s", s)
		seen[s] = struct{}{}
	}
}

func TestGenerateNeverEmitsLunchSlots(t *testing.T) {
	for _, window := range [][2]string{
		{"9:00 AM", "5:00 PM"},
		{"12:00 PM", "3:00 PM"},
		{"1:00 PM", "2:00 PM"},
	} {
		for _, slot := range Generate(window[0], window[1]) {
			parsed, err := ParseClock(slot)
			require.NoError(t, err)
			assert.NotEqual(t, 13, parsed.Hour(), "window %v emitted lunch slot %s", window, slot)
		}
	}
}

func TestGenerateRoundsStartUp(t *testing.T) {
	slots := Generate("9:10 AM", "11:00 AM")
	require.NotEmpty(t, slots)
	assert.Equal(t, "9:30 AM", slots[0])
}

func TestGenerateDropsSlotOverrunningEnd(t *testing.T) {
	// 10:00 and 10:30 fit; a 10:45 end would leave 10:30+30 > end.
	slots := Generate("10:00 AM", "10:45 AM")
	assert.Equal(t, []string{"10:00 AM"}, slots)
}

func TestGenerateFallsBackOnUnparseableWindow(t *testing.T) {
	assert.Equal(t, DefaultSlots(), Generate("Mon-Fri", "9AM-5PM ish"))
	assert.Equal(t, DefaultSlots(), Generate("", "5:00 PM"))
	assert.Len(t, DefaultSlots(), 10)
}

func TestParseClockForms(t *testing.T) {
	for _, input := range []string{"9:00 AM", "9 AM", "9:00AM", "9 am", "12:30 pm"} {
		_, err := ParseClock(input)
		assert.NoError(t, err, "input %q", input)
	}
	_, err := ParseClock("25:00")
	assert.Error(t, err)
}

func TestBuildDayMarksBookedSlots(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	got := BuildDay(day, "9:00 AM", "11:00 AM", []string{"9:30 AM"})

	assert.Equal(t, "10-15-2025", got.Date)
	assert.Equal(t, "Wednesday, October 15, 2025", got.DisplayName)
	require.Len(t, got.Slots, 4)
	assert.Equal(t, 3, got.Available)

	free := got.FreeSlots()
	require.Len(t, free, 3)
	for _, s := range free {
		assert.NotEqual(t, "9:30 AM", s.Time)
	}
}

func TestUpcomingDatesExcludesToday(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC)

	days, err := UpcomingDates(context.Background(), now, "", "9:00 AM", "5:00 PM", nil)
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, "10-15-2025", days[0].Date)
	assert.Equal(t, "10-21-2025", days[6].Date)
	for _, d := range days {
		assert.NotEqual(t, "10-14-2025", d.Date)
	}
}

func TestUpcomingDatesReconcilesBookings(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC)

	lookup := func(ctx context.Context, doctorID, date string) ([]string, error) {
		if date == "10-15-2025" {
			return []string{"9:00 AM", "2:00 PM"}, nil
		}
		return nil, nil
	}

	days, err := UpcomingDates(context.Background(), now, "doc-1", "9:00 AM", "5:00 PM", lookup)
	require.NoError(t, err)

	first := days[0]
	assert.Equal(t, len(first.Slots)-2, first.Available)
	for _, s := range first.Slots {
		if s.Time == "9:00 AM" || s.Time == "2:00 PM" {
			assert.True(t, s.Booked, "slot %s should be booked", s.Time)
		}
	}

	// Other days are untouched.
	assert.Equal(t, len(days[1].Slots), days[1].Available)
}

func TestUpcomingDatesPropagatesLookupFailure(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 30, 0, 0, time.UTC)
	lookup := func(ctx context.Context, doctorID, date string) ([]string, error) {
		return nil, errors.New("store down")
	}

	_, err := UpcomingDates(context.Background(), now, "doc-1", "9:00 AM", "5:00 PM", lookup)
	assert.Error(t, err)
}
