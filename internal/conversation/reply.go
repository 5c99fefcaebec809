package conversation

import (
	"github.com/clinova/intake/internal/bookings"
	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/internal/schedule"
)

// ReplyKind tags a reply so the client can render the right input widget.
type ReplyKind string

const (
	ReplyMenu                ReplyKind = "menu"
	ReplyTextInput           ReplyKind = "text_input"
	ReplyBloodGroupSelection ReplyKind = "blood_group_selection"
	ReplyGenderSelection     ReplyKind = "gender_selection"
	ReplyDoctorSelection     ReplyKind = "doctor_selection"
	ReplyDateSelection       ReplyKind = "date_selection"
	ReplyTimeSelection       ReplyKind = "time_selection"
	ReplyBookingDetails      ReplyKind = "booking_details"
	ReplyBookingConfirmed    ReplyKind = "booking_confirmed"
	ReplyError               ReplyKind = "error"
	ReplyEndConfirmation     ReplyKind = "end_confirmation"
)

// Reply is the structured response for one conversation turn.
type Reply struct {
	Message     string                `json:"message"`
	Type        ReplyKind             `json:"type"`
	Placeholder string                `json:"placeholder,omitempty"`
	Options     []string              `json:"options,omitempty"`
	Doctors     []doctors.Doctor      `json:"doctors,omitempty"`
	Dates       []schedule.DaySlots   `json:"dates,omitempty"`
	TimeSlots   []schedule.TimeSlot   `json:"time_slots,omitempty"`
	Booking     *bookings.BookingView `json:"booking_details,omitempty"`
	UniqueCode  string                `json:"unique_code,omitempty"`
}

func textInput(message, placeholder string) Reply {
	return Reply{Message: message, Type: ReplyTextInput, Placeholder: placeholder}
}

func menuReply(message string) Reply {
	return Reply{Message: message, Type: ReplyMenu}
}
