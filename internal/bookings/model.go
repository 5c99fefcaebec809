package bookings

import "time"

// StatusConfirmed is the status written on every new confirmation. Status
// changes afterwards happen only through administrative flows outside this
// service.
const StatusConfirmed = "confirmed"

// PatientRecord is the persisted patient document. The unique code is the
// durable external lookup key; the record is immutable once created.
type PatientRecord struct {
	ID              string    `bson:"_id" json:"patientId"`
	Name            string    `bson:"name" json:"name"`
	Age             int       `bson:"age" json:"age"`
	Gender          string    `bson:"gender" json:"gender"`
	BloodGroup      string    `bson:"blood" json:"blood"`
	Contact         string    `bson:"contact" json:"contact"`
	UniqueCode      string    `bson:"uniqueCode" json:"uniqueCode"`
	Symptoms        []string  `bson:"symptoms" json:"symptoms"`
	MatchedSymptoms []string  `bson:"matchedSymptoms" json:"matchedSymptoms"`
	Conditions      []string  `bson:"possibleDiseases" json:"possibleDiseases"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// Confirmation links a patient to the booked doctor, date and time.
type Confirmation struct {
	ID         string    `bson:"_id" json:"confirmationId"`
	PatientID  string    `bson:"patient" json:"patient"`
	DoctorID   string    `bson:"doctor" json:"doctor"`
	DoctorName string    `bson:"doctorName" json:"doctorName"`
	Date       string    `bson:"date" json:"date"`
	Time       string    `bson:"slot" json:"slot"`
	Status     string    `bson:"status" json:"status"`
	UniqueCode string    `bson:"uniqueCode" json:"uniqueCode"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotKey identifies a booked slot so future availability queries exclude it.
type SlotKey struct {
	DoctorID string `bson:"doctor" json:"doctor"`
	Date     string `bson:"date" json:"date"`
	Time     string `bson:"time" json:"time"`
}

// BookingRequest carries a fully populated draft into the booking
// transaction.
type BookingRequest struct {
	Name            string
	Age             int
	Gender          string
	BloodGroup      string
	Contact         string
	Symptoms        []string
	MatchedSymptoms []string
	Conditions      []string
	DoctorID        string
	DoctorName      string
	Date            string
	Time            string
}

// BookingView is the combined view assembled for a code lookup.
type BookingView struct {
	UniqueCode     string             `json:"uniqueCode"`
	Patient        PatientSummary     `json:"patient"`
	Doctor         DoctorSummary      `json:"doctor"`
	Appointment    AppointmentSummary `json:"appointment"`
	ConfirmationID string             `json:"confirmationId"`
	PatientID      string             `json:"patientId"`
}

// PatientSummary is the patient slice of a booking view.
type PatientSummary struct {
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Blood   string `json:"blood"`
	Contact string `json:"contact"`
}

// DoctorSummary is the doctor slice of a booking view.
type DoctorSummary struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// AppointmentSummary is the appointment slice of a booking view.
type AppointmentSummary struct {
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
