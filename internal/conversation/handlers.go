package conversation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/clinova/intake/internal/bookings"
	"github.com/clinova/intake/internal/schedule"
	"github.com/clinova/intake/internal/validate"
)

const (
	welcomeMessage = "Welcome to the Medical Chatbot!\n\n" +
		"I can help you with:\n" +
		"1. Check your existing booking details\n" +
		"2. Book a new doctor's appointment\n\n" +
		"Please select an option below:"

	backToMenuMessage = "Back to Main Menu!\n\n" +
		"I can help you with:\n" +
		"1. Check your existing booking details\n" +
		"2. Book a new doctor's appointment\n\n" +
		"Please select an option below:"

	codePrompt = "Please enter your 8-digit unique code to check your booking details:"
	namePrompt = "Great! Let's book your appointment.\n\nPlease enter your full name:"
)

var codePattern = regexp.MustCompile(`^\d{8}$`)

func (e *Engine) handleGreeting(_ context.Context, sess Session, msg string) (Reply, Session) {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "check") && strings.Contains(lower, "booking"):
		sess.State = StateWaitingCode
		return textInput(codePrompt, "Enter 8-digit code"), sess

	case strings.Contains(lower, "book") && strings.Contains(lower, "appointment"):
		sess.State = StateWaitingName
		sess.Draft = Draft{}
		return textInput(namePrompt, "Enter your full name"), sess
	}
	return menuReply(welcomeMessage), sess
}

func (e *Engine) handleCode(ctx context.Context, sess Session, msg string) (Reply, Session) {
	code := strings.TrimSpace(msg)
	if !codePattern.MatchString(code) {
		return textInput("Invalid code format. Please enter your 8-digit unique code:", "Enter 8-digit code"), sess
	}

	view, err := e.booking.Lookup(ctx, code)
	if err != nil {
		sess.State = StateGreeting
		if errors.Is(err, bookings.ErrNotFound) {
			e.metrics.ObserveLookup("not_found")
			return Reply{
				Message: fmt.Sprintf("No booking found for code %s. Please check your code and try again.\n\nType 'menu' to return to the main menu.", code),
				Type:    ReplyError,
			}, sess
		}
		e.metrics.ObserveLookup("error")
		e.logger.Error("booking lookup failed", "error", err, "session_id", sess.ID)
		return Reply{
			Message: "Something went wrong while looking up your booking. Please try again later.\n\nType 'menu' to return to the main menu.",
			Type:    ReplyError,
		}, sess
	}

	e.metrics.ObserveLookup("found")
	sess.State = StateGreeting
	return Reply{
		Message: formatBookingDetails(view),
		Type:    ReplyBookingDetails,
		Booking: view,
	}, sess
}

func formatBookingDetails(v *bookings.BookingView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking Details\n\n")
	fmt.Fprintf(&b, "Unique Code: %s\n\n", v.UniqueCode)
	fmt.Fprintf(&b, "Patient Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", v.Patient.Name)
	fmt.Fprintf(&b, "- Age: %d\n", v.Patient.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", v.Patient.Gender)
	fmt.Fprintf(&b, "- Blood Group: %s\n", v.Patient.Blood)
	fmt.Fprintf(&b, "- Contact: %s\n\n", v.Patient.Contact)
	fmt.Fprintf(&b, "Doctor Information:\n")
	fmt.Fprintf(&b, "- Doctor: %s\n", v.Doctor.Name)
	fmt.Fprintf(&b, "- Specialty: %s\n\n", v.Doctor.Specialty)
	fmt.Fprintf(&b, "Appointment:\n")
	fmt.Fprintf(&b, "- Date: %s\n", v.Appointment.Date)
	fmt.Fprintf(&b, "- Time: %s\n", v.Appointment.Time)
	fmt.Fprintf(&b, "- Status: %s\n\n", titleCase(v.Appointment.Status))
	b.WriteString("Type 'menu' to return to the main menu.")
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (e *Engine) handleName(_ context.Context, sess Session, msg string) (Reply, Session) {
	name, err := validate.Name(msg)
	if err != nil {
		return textInput("Please enter a valid name (letters and spaces only):", "Enter your full name"), sess
	}
	sess.Draft.Name = name
	sess.State = StateWaitingBloodGroup
	return Reply{
		Message: fmt.Sprintf("Nice to meet you, %s!\n\nPlease select your blood group:", name),
		Type:    ReplyBloodGroupSelection,
		Options: validate.BloodGroups(),
	}, sess
}

func (e *Engine) handleBloodGroup(_ context.Context, sess Session, msg string) (Reply, Session) {
	group, err := validate.BloodGroup(msg)
	if err != nil {
		return Reply{
			Message: "Please select a valid blood group:",
			Type:    ReplyBloodGroupSelection,
			Options: validate.BloodGroups(),
		}, sess
	}
	sess.Draft.BloodGroup = group
	sess.State = StateWaitingAge
	return textInput("Please enter your age:", "Enter your age"), sess
}

func (e *Engine) handleAge(_ context.Context, sess Session, msg string) (Reply, Session) {
	age, err := validate.Age(msg)
	if err != nil {
		return textInput("Please enter a valid age between 1 and 120:", "Enter your age"), sess
	}
	sess.Draft.Age = age
	sess.State = StateWaitingGender
	return Reply{
		Message: "Please select your gender:",
		Type:    ReplyGenderSelection,
		Options: validate.Genders(),
	}, sess
}

func (e *Engine) handleGender(_ context.Context, sess Session, msg string) (Reply, Session) {
	gender, err := validate.Gender(msg)
	if err != nil {
		return Reply{
			Message: "Please select a valid gender:",
			Type:    ReplyGenderSelection,
			Options: validate.Genders(),
		}, sess
	}
	sess.Draft.Gender = gender
	sess.State = StateWaitingContact
	return textInput("Please enter your contact number:", "Enter 10-digit mobile number"), sess
}

func (e *Engine) handleContact(_ context.Context, sess Session, msg string) (Reply, Session) {
	contact, err := validate.Contact(msg)
	if err != nil {
		return textInput("Please enter a valid 10-digit mobile number:", "Enter 10-digit mobile number"), sess
	}
	sess.Draft.Contact = contact
	sess.State = StateWaitingSymptoms
	return textInput(
		"Please describe your symptoms (separate multiple symptoms with commas):",
		"e.g. headache, fever, sore throat",
	), sess
}

func (e *Engine) handleSymptoms(ctx context.Context, sess Session, msg string) (Reply, Session) {
	var entered []string
	for _, part := range strings.Split(msg, ",") {
		if s := strings.TrimSpace(part); s != "" {
			entered = append(entered, s)
		}
	}
	if len(entered) == 0 {
		return textInput(
			"Please describe your symptoms (separate multiple symptoms with commas):",
			"e.g. headache, fever, sore throat",
		), sess
	}
	sess.Draft.Symptoms = append(sess.Draft.Symptoms, entered...)

	result := e.analyzer.Analyze(sess.Draft.Symptoms)
	sess.Draft.MatchedSymptoms = result.Matched
	sess.Draft.Conditions = result.Conditions

	available, err := e.directory.List(ctx)
	if err != nil || len(available) == 0 {
		e.logger.Error("doctor listing failed", "error", err, "session_id", sess.ID)
		sess = sess.reset()
		return Reply{
			Message: "No doctors are available right now. Please try again later.\n\nType 'menu' to return to the main menu.",
			Type:    ReplyError,
		}, sess
	}
	sess.OfferedDoctors = available
	sess.State = StateWaitingDoctor

	var b strings.Builder
	fmt.Fprintf(&b, "Recorded symptoms: %s\n\n", strings.Join(sess.Draft.Symptoms, ", "))
	b.WriteString("Pre-Analysis:\n")
	if len(result.Matched) > 0 {
		fmt.Fprintf(&b, "- Matched symptoms: %s\n", strings.Join(result.Matched, ", "))
	} else {
		b.WriteString("- General symptoms detected\n")
	}
	if len(result.Conditions) > 0 {
		fmt.Fprintf(&b, "- Possible conditions: %s\n", strings.Join(result.Conditions, ", "))
	}
	b.WriteString("\nThis is a preliminary assessment only. A doctor will provide a proper diagnosis.\n\n")
	b.WriteString("Available Doctors:\nPlease select a doctor from the options below:")

	return Reply{
		Message: b.String(),
		Type:    ReplyDoctorSelection,
		Doctors: available,
	}, sess
}

func (e *Engine) handleDoctorSelection(ctx context.Context, sess Session, msg string) (Reply, Session) {
	idx, ok := parseSelection(msg, len(sess.OfferedDoctors))
	if !ok {
		return Reply{
			Message: "Please select a doctor from the options below:",
			Type:    ReplyDoctorSelection,
			Doctors: sess.OfferedDoctors,
		}, sess
	}
	doc := sess.OfferedDoctors[idx-1]
	sess.Draft.Doctor = &doc

	dates, err := schedule.UpcomingDates(ctx, e.now(), doc.ID, doc.WorkStart, doc.WorkEnd, e.booking.BookedTimes)
	if err != nil {
		e.logger.Error("building available dates failed", "error", err, "doctor_id", doc.ID)
		sess = sess.reset()
		return Reply{
			Message: "Something went wrong fetching available dates. Please try again later.\n\nType 'menu' to return to the main menu.",
			Type:    ReplyError,
		}, sess
	}
	sess.OfferedDates = dates
	sess.State = StateWaitingDate

	return Reply{
		Message: fmt.Sprintf(
			"You selected %s (%s).\nAvailability: %s\n\nPlease select an appointment date:",
			doc.Name, doc.Specialty, doc.Availability,
		),
		Type:  ReplyDateSelection,
		Dates: dates,
	}, sess
}

func (e *Engine) handleDateSelection(_ context.Context, sess Session, msg string) (Reply, Session) {
	idx, ok := parseSelection(msg, len(sess.OfferedDates))
	if !ok {
		return Reply{
			Message: "Please select a valid date from the options below:",
			Type:    ReplyDateSelection,
			Dates:   sess.OfferedDates,
		}, sess
	}
	day := sess.OfferedDates[idx-1]

	free := day.FreeSlots()
	if len(free) == 0 {
		return Reply{
			Message: fmt.Sprintf("Sorry, %s has no available time slots. Please select another date:", day.DisplayName),
			Type:    ReplyDateSelection,
			Dates:   sess.OfferedDates,
		}, sess
	}

	sess.Draft.Date = day.Date
	sess.Draft.DateDisplay = day.DisplayName
	sess.OfferedSlots = free
	sess.State = StateWaitingTime

	return Reply{
		Message:   fmt.Sprintf("You selected %s.\n\nPlease select a time slot:", day.DisplayName),
		Type:      ReplyTimeSelection,
		TimeSlots: free,
	}, sess
}

func (e *Engine) handleTimeSelection(ctx context.Context, sess Session, msg string) (Reply, Session) {
	idx, ok := parseSelection(msg, len(sess.OfferedSlots))
	if !ok {
		return Reply{
			Message:   "Please select a valid time slot from the options below:",
			Type:      ReplyTimeSelection,
			TimeSlots: sess.OfferedSlots,
		}, sess
	}
	slot := sess.OfferedSlots[idx-1]

	if sess.Draft.Doctor == nil || sess.Draft.Name == "" {
		e.metrics.ObserveBooking("failed")
		sess = sess.reset()
		return Reply{
			Message: "Your session is missing booking details. Please start over.\n\nType 'menu' to return to the main menu.",
			Type:    ReplyError,
		}, sess
	}

	age, err := strconv.Atoi(sess.Draft.Age)
	if err != nil {
		age = 0
	}

	req := bookings.BookingRequest{
		Name:            sess.Draft.Name,
		Age:             age,
		Gender:          sess.Draft.Gender,
		BloodGroup:      sess.Draft.BloodGroup,
		Contact:         sess.Draft.Contact,
		Symptoms:        sess.Draft.Symptoms,
		MatchedSymptoms: sess.Draft.MatchedSymptoms,
		Conditions:      sess.Draft.Conditions,
		DoctorID:        sess.Draft.Doctor.ID,
		DoctorName:      sess.Draft.Doctor.Name,
		Date:            sess.Draft.Date,
		Time:            slot.Time,
	}
	code, err := e.booking.Book(ctx, req)
	if err != nil {
		e.metrics.ObserveBooking("failed")
		e.logger.Error("booking failed", "error", err, "session_id", sess.ID)
		sess = sess.reset()
		return Reply{
			Message: "Booking failed. Please try again or contact support.\n\nType 'menu' to return to the main menu.",
			Type:    ReplyError,
		}, sess
	}

	e.metrics.ObserveBooking("confirmed")
	dateDisplay := sess.Draft.DateDisplay
	name := sess.Draft.Name
	contact := sess.Draft.Contact
	doctorName := sess.Draft.Doctor.Name
	sess = sess.reset()

	var b strings.Builder
	b.WriteString("Appointment Confirmed!\n\n")
	fmt.Fprintf(&b, "Your Unique Code: %s\n", code)
	b.WriteString("Save this code to check your booking details anytime.\n\n")
	fmt.Fprintf(&b, "Patient: %s\n", name)
	fmt.Fprintf(&b, "Contact: %s\n", contact)
	fmt.Fprintf(&b, "Doctor: %s\n", doctorName)
	fmt.Fprintf(&b, "Date: %s\n", dateDisplay)
	fmt.Fprintf(&b, "Time Slot: %s\n\n", slot.Time)
	b.WriteString("Type 'menu' to return to the main menu.")

	return Reply{
		Message:    b.String(),
		Type:       ReplyBookingConfirmed,
		UniqueCode: code,
	}, sess
}
