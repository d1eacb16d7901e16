package models

import "strings"

// ConversationState is the controller's position in the booking dialogue.
type ConversationState string

const (
	StateStart           ConversationState = "start"
	StateCollectingName  ConversationState = "collecting_name"
	StateCollectingEmail ConversationState = "collecting_email"
	StateSelectingDay    ConversationState = "selecting_day"
	StateSelectingTime   ConversationState = "selecting_time"
	StateConfirming      ConversationState = "confirming"
	StateDone            ConversationState = "done"
)

// ParseConversationState validates a stored state name.
func ParseConversationState(s string) (ConversationState, bool) {
	switch ConversationState(s) {
	case StateStart, StateCollectingName, StateCollectingEmail, StateSelectingDay,
		StateSelectingTime, StateConfirming, StateDone:
		return ConversationState(s), true
	default:
		return "", false
	}
}

// BookingDraft accumulates the fields of an in-progress booking. A field is
// only written once its value has been validated.
type BookingDraft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	SelectedDay  string `json:"selectedDay"`
	SelectedTime string `json:"selectedTime"`
}

// Complete reports whether every field is filled.
func (d BookingDraft) Complete() bool {
	return d.Name != "" && d.Email != "" && d.SelectedDay != "" && d.SelectedTime != ""
}

// SlotDescription is the free-text slot sent to checkout, e.g. "Monday 2:00 PM".
func (d BookingDraft) SlotDescription() string {
	return strings.TrimSpace(d.SelectedDay + " " + d.SelectedTime)
}

// Reset empties the draft.
func (d *BookingDraft) Reset() {
	*d = BookingDraft{}
}
