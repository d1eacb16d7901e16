package models

import "time"

// BusyInterval is an occupied range reported by the calendar. Either bound
// may be missing, in which case the interval never blocks a slot.
type BusyInterval struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// AvailableSlot is a fixed-length appointment window free of busy intervals.
type AvailableSlot struct {
	Start       string `json:"start"`       // RFC 3339, UTC
	End         string `json:"end"`         // RFC 3339, UTC
	DisplayTime string `json:"displayTime"` // e.g. "09:00 AM"
}

// DaySuggestion is a forward-looking day hint.
type DaySuggestion struct {
	Day       string `json:"day"`  // weekday name
	Date      string `json:"date"` // YYYY-MM-DD
	Available bool   `json:"available"`
}

// AvailabilityResponse is the body of GET /api/availability.
type AvailabilityResponse struct {
	Date              string          `json:"date"`
	AvailableSlots    []AvailableSlot `json:"availableSlots"`
	NextAvailableDays []DaySuggestion `json:"nextAvailableDays"`
	Available         bool            `json:"available"`
}

// WorkingHours bounds the candidate slots of a day, in whole UTC hours.
type WorkingHours struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}
