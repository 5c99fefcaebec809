// Package conversation owns the per-session intake state machine: it routes
// each inbound message to the handler for the session's current state and
// advances the state only on validated input.
package conversation

import (
	"time"

	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/internal/schedule"
)

// State is the conversational position of a session.
type State string

const (
	StateGreeting          State = "greeting"
	StateWaitingCode       State = "waiting_code"
	StateWaitingName       State = "waiting_name"
	StateWaitingBloodGroup State = "waiting_blood_group"
	StateWaitingAge        State = "waiting_age"
	StateWaitingGender     State = "waiting_gender"
	StateWaitingContact    State = "waiting_contact"
	StateWaitingSymptoms   State = "waiting_symptoms"
	StateWaitingDoctor     State = "waiting_doctor_selection"
	StateWaitingDate       State = "waiting_date_selection"
	StateWaitingTime       State = "waiting_time_selection"
)

// Draft accumulates validated patient and booking fields across turns. Only
// a fully populated draft reaches the booking transaction.
type Draft struct {
	Name            string          `json:"name,omitempty"`
	BloodGroup      string          `json:"blood_group,omitempty"`
	Age             string          `json:"age,omitempty"`
	Gender          string          `json:"gender,omitempty"`
	Contact         string          `json:"contact,omitempty"`
	Symptoms        []string        `json:"symptoms,omitempty"`
	MatchedSymptoms []string        `json:"matched_symptoms,omitempty"`
	Conditions      []string        `json:"conditions,omitempty"`
	Doctor          *doctors.Doctor `json:"doctor,omitempty"`
	Date            string          `json:"date,omitempty"`
	DateDisplay     string          `json:"date_display,omitempty"`
	Time            string          `json:"time,omitempty"`
}

// Turn is one exchange in the session history. Informational only.
type Turn struct {
	User      string    `json:"user"`
	Bot       string    `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the durable conversational context for one user. Handlers
// receive it by value and return the updated copy; the engine persists the
// result, so transitions stay testable in isolation.
type Session struct {
	ID    string `json:"id"`
	State State  `json:"state"`
	Draft Draft  `json:"draft"`

	// Offered* hold the sequences presented in the immediately preceding
	// turn. Selection indices are only valid against the most recent offer.
	OfferedDoctors []doctors.Doctor    `json:"offered_doctors,omitempty"`
	OfferedDates   []schedule.DaySlots `json:"offered_dates,omitempty"`
	OfferedSlots   []schedule.TimeSlot `json:"offered_slots,omitempty"`

	History []Turn `json:"history,omitempty"`
}

// NewSession creates a fresh session at the greeting state.
func NewSession(id string) Session {
	return Session{ID: id, State: StateGreeting}
}

// reset returns the session to the greeting state and discards the
// in-progress draft and offers. History is kept.
func (s Session) reset() Session {
	s.State = StateGreeting
	s.Draft = Draft{}
	s.OfferedDoctors = nil
	s.OfferedDates = nil
	s.OfferedSlots = nil
	return s
}
