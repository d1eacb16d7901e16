package availability

import (
	"time"

	"poppi/models"
)

const (
	DefaultSlotMinutes = 30
	DefaultSuggestions = 3
	DefaultHorizonDays = 7
	dayLayout          = "2006-01-02"
	timestampLayout    = "2006-01-02T15:04:05.000Z07:00"
	displayTimeLayout  = "03:04 PM"
)

// DefaultWorkingHours is the 09:00–17:00 UTC window.
var DefaultWorkingHours = models.WorkingHours{StartHour: 9, EndHour: 17}

// ComputeAvailableSlots returns, in chronological order, every slotMinutes
// window between hours.StartHour:00 and hours.EndHour:00 UTC on date that no
// busy interval overlaps. A trailing window that would end after EndHour is
// not offered. Only the calendar day of date is used.
func ComputeAvailableSlots(date time.Time, busy []models.BusyInterval, hours models.WorkingHours, slotMinutes int) []models.AvailableSlot {
	slots := make([]models.AvailableSlot, 0)
	if slotMinutes <= 0 || hours.EndHour <= hours.StartHour {
		return slots
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	step := time.Duration(slotMinutes) * time.Minute
	windowEnd := day.Add(time.Duration(hours.EndHour) * time.Hour)

	for start := day.Add(time.Duration(hours.StartHour) * time.Hour); !start.Add(step).After(windowEnd); start = start.Add(step) {
		end := start.Add(step)
		if blocked(start, end, busy) {
			continue
		}
		slots = append(slots, models.AvailableSlot{
			Start:       start.Format(timestampLayout),
			End:         end.Format(timestampLayout),
			DisplayTime: start.Format(displayTimeLayout),
		})
	}
	return slots
}

// blocked reports whether any complete busy interval overlaps [start, end).
func blocked(start, end time.Time, busy []models.BusyInterval) bool {
	for _, b := range busy {
		if b.Start == nil || b.End == nil {
			continue
		}
		bs, be := *b.Start, *b.End
		startInside := !start.Before(bs) && start.Before(be)
		endInside := end.After(bs) && !end.After(be)
		covers := !start.After(bs) && !end.Before(be)
		if startInside || endInside || covers {
			return true
		}
	}
	return false
}

// NextCandidateDays suggests up to count days following from, looking at
// most horizonDays ahead. Every suggestion is reported as available; the
// calendar is not consulted per day.
func NextCandidateDays(from time.Time, count, horizonDays int) []models.DaySuggestion {
	suggestions := make([]models.DaySuggestion, 0, count)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for i := 1; i <= horizonDays && len(suggestions) < count; i++ {
		next := day.AddDate(0, 0, i)
		suggestions = append(suggestions, models.DaySuggestion{
			Day:       next.Weekday().String(),
			Date:      next.Format(dayLayout),
			Available: true,
		})
	}
	return suggestions
}
