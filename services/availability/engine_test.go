package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poppi/models"
)

func ts(t *testing.T, raw string) *time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
	return &v
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDay(raw)
	require.NoError(t, err)
	return d
}

func TestComputeAvailableSlots_EmptyDay(t *testing.T) {
	day := mustDay(t, "2025-06-02")

	slots := ComputeAvailableSlots(day, nil, DefaultWorkingHours, 30)

	require.Len(t, slots, 16)
	assert.Equal(t, "2025-06-02T09:00:00.000Z", slots[0].Start)
	assert.Equal(t, "2025-06-02T09:30:00.000Z", slots[0].End)
	assert.Equal(t, "09:00 AM", slots[0].DisplayTime)
	assert.Equal(t, "2025-06-02T16:30:00.000Z", slots[15].Start)
	assert.Equal(t, "2025-06-02T17:00:00.000Z", slots[15].End)
	assert.Equal(t, "04:30 PM", slots[15].DisplayTime)
}

func TestComputeAvailableSlots_ContiguousAndFixedLength(t *testing.T) {
	day := mustDay(t, "2025-06-03")

	tests := []struct {
		name        string
		hours       models.WorkingHours
		slotMinutes int
	}{
		{"default", DefaultWorkingHours, 30},
		{"hourly", DefaultWorkingHours, 60},
		{"quarter hours", models.WorkingHours{StartHour: 8, EndHour: 12}, 15},
		{"noon crossing", models.WorkingHours{StartHour: 11, EndHour: 14}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ComputeAvailableSlots(day, nil, tt.hours, tt.slotMinutes)
			want := (tt.hours.EndHour - tt.hours.StartHour) * 60 / tt.slotMinutes
			require.Len(t, slots, want)

			for i, slot := range slots {
				start, err := time.Parse(time.RFC3339, slot.Start)
				require.NoError(t, err)
				end, err := time.Parse(time.RFC3339, slot.End)
				require.NoError(t, err)
				assert.Equal(t, time.Duration(tt.slotMinutes)*time.Minute, end.Sub(start))
				if i > 0 {
					assert.Equal(t, slots[i-1].End, slot.Start, "gap before slot %d", i)
				}
			}
		})
	}
}

func TestComputeAvailableSlots_UnevenSlotStopsInsideHours(t *testing.T) {
	day := mustDay(t, "2025-06-03")

	slots := ComputeAvailableSlots(day, nil, DefaultWorkingHours, 45)
	require.Len(t, slots, 10)
	last := slots[len(slots)-1]
	assert.Equal(t, "2025-06-03T15:45:00.000Z", last.Start)
	assert.Equal(t, "2025-06-03T16:30:00.000Z", last.End)
	assert.Equal(t, "03:45 PM", last.DisplayTime)
}

func TestComputeAvailableSlots_BusyHourRemovesTwoSlots(t *testing.T) {
	day := mustDay(t, "2025-06-02")
	busy := []models.BusyInterval{{
		Start: ts(t, "2025-06-02T09:00:00Z"),
		End:   ts(t, "2025-06-02T10:00:00Z"),
	}}

	slots := ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30)

	require.Len(t, slots, 14)
	assert.Equal(t, "10:00 AM", slots[0].DisplayTime)
	for _, s := range slots {
		assert.NotEqual(t, "09:00 AM", s.DisplayTime)
		assert.NotEqual(t, "09:30 AM", s.DisplayTime)
	}
}

func TestComputeAvailableSlots_ExactSlotBoundaries(t *testing.T) {
	day := mustDay(t, "2025-06-02")
	busy := []models.BusyInterval{{
		Start: ts(t, "2025-06-02T13:00:00Z"),
		End:   ts(t, "2025-06-02T13:30:00Z"),
	}}

	slots := ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30)

	require.Len(t, slots, 15)
	labels := displayTimes(slots)
	assert.NotContains(t, labels, "01:00 PM")
	assert.Contains(t, labels, "12:30 PM")
	assert.Contains(t, labels, "01:30 PM")
}

func TestComputeAvailableSlots_OverlapRules(t *testing.T) {
	day := mustDay(t, "2025-06-02")

	tests := []struct {
		name    string
		start   string
		end     string
		removed []string
	}{
		{"contains slot start", "2025-06-02T10:15:00Z", "2025-06-02T10:45:00Z", []string{"10:00 AM", "10:30 AM"}},
		{"inside slot", "2025-06-02T11:10:00Z", "2025-06-02T11:20:00Z", []string{"11:00 AM"}},
		{"spans several slots", "2025-06-02T14:00:00Z", "2025-06-02T15:30:00Z", []string{"02:00 PM", "02:30 PM", "03:00 PM"}},
		{"ends at window start", "2025-06-02T08:00:00Z", "2025-06-02T09:00:00Z", nil},
		{"starts at window end", "2025-06-02T17:00:00Z", "2025-06-02T18:00:00Z", nil},
		{"all day", "2025-06-02T00:00:00Z", "2025-06-03T00:00:00Z", allLabels(t, day)},
		{"offset timezone", "2025-06-02T12:00:00+02:00", "2025-06-02T12:30:00+02:00", []string{"10:00 AM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busy := []models.BusyInterval{{Start: ts(t, tt.start), End: ts(t, tt.end)}}
			slots := ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30)

			assert.Len(t, slots, 16-len(tt.removed))
			labels := displayTimes(slots)
			for _, r := range tt.removed {
				assert.NotContains(t, labels, r)
			}
		})
	}
}

func TestComputeAvailableSlots_IncompleteIntervalsNeverBlock(t *testing.T) {
	day := mustDay(t, "2025-06-02")
	base := ComputeAvailableSlots(day, nil, DefaultWorkingHours, 30)

	busy := []models.BusyInterval{
		{Start: ts(t, "2025-06-02T09:00:00Z"), End: nil},
		{Start: nil, End: ts(t, "2025-06-02T17:00:00Z")},
		{},
	}

	assert.Equal(t, base, ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30))
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	day := mustDay(t, "2025-06-02")
	busy := []models.BusyInterval{{
		Start: ts(t, "2025-06-02T12:00:00Z"),
		End:   ts(t, "2025-06-02T13:00:00Z"),
	}}

	first := ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30)
	second := ComputeAvailableSlots(day, busy, DefaultWorkingHours, 30)

	assert.Equal(t, first, second)
}

func TestComputeAvailableSlots_InvalidConfiguration(t *testing.T) {
	day := mustDay(t, "2025-06-02")

	assert.Empty(t, ComputeAvailableSlots(day, nil, DefaultWorkingHours, 0))
	assert.Empty(t, ComputeAvailableSlots(day, nil, models.WorkingHours{StartHour: 17, EndHour: 9}, 30))
}

func TestComputeAvailableSlots_UsesCalendarDayOnly(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*60*60)
	late := time.Date(2025, 6, 2, 23, 30, 0, 0, loc)

	slots := ComputeAvailableSlots(late, nil, DefaultWorkingHours, 30)

	require.NotEmpty(t, slots)
	assert.Equal(t, "2025-06-02T09:00:00.000Z", slots[0].Start)
}

func TestNextCandidateDays(t *testing.T) {
	from := mustDay(t, "2025-06-02")

	days := NextCandidateDays(from, DefaultSuggestions, DefaultHorizonDays)

	assert.Equal(t, []models.DaySuggestion{
		{Day: "Tuesday", Date: "2025-06-03", Available: true},
		{Day: "Wednesday", Date: "2025-06-04", Available: true},
		{Day: "Thursday", Date: "2025-06-05", Available: true},
	}, days)
}

func TestNextCandidateDays_HorizonLimitsCount(t *testing.T) {
	from := mustDay(t, "2025-12-30")

	days := NextCandidateDays(from, 5, 2)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-12-31", days[0].Date)
	assert.Equal(t, "2026-01-01", days[1].Date)
}

func displayTimes(slots []models.AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.DisplayTime)
	}
	return out
}

func allLabels(t *testing.T, day time.Time) []string {
	t.Helper()
	return displayTimes(ComputeAvailableSlots(day, nil, DefaultWorkingHours, 30))
}
