package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/clinova/intake/internal/doctors"
	"github.com/clinova/intake/pkg/logging"
)

const codeDigits = 8

var codeSpace = big.NewInt(100_000_000)

// Service runs the booking transaction and serves code lookups.
type Service struct {
	repo      Repository
	directory doctors.Directory
	logger    *logging.Logger
	now       func() time.Time
}

// NewService constructs a booking service.
func NewService(repo Repository, directory doctors.Directory, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, directory: directory, logger: logger, now: time.Now}
}

// Book reserves the selected slot: it issues a fresh 8-digit code, then
// persists the patient record, the confirmation, and the booked-slot marker
// in sequence. The first failing step aborts the remaining ones; earlier
// writes are not rolled back, so a confirmation-write failure can leave an
// orphaned patient record. That inconsistency is accepted and logged, not
// hidden.
func (s *Service) Book(ctx context.Context, req BookingRequest) (string, error) {
	if req.Name == "" || req.DoctorID == "" || req.Date == "" || req.Time == "" {
		return "", ErrIncompleteDraft
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return "", err
	}
	now := s.now().UTC()

	patient := &PatientRecord{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Age:             req.Age,
		Gender:          req.Gender,
		BloodGroup:      req.BloodGroup,
		Contact:         req.Contact,
		UniqueCode:      code,
		Symptoms:        req.Symptoms,
		MatchedSymptoms: req.MatchedSymptoms,
		Conditions:      req.Conditions,
		CreatedAt:       now,
	}
	if err := s.repo.InsertPatient(ctx, patient); err != nil {
		return "", fmt.Errorf("bookings: save patient: %w", err)
	}

	conf := &Confirmation{
		ID:         uuid.NewString(),
		PatientID:  patient.ID,
		DoctorID:   req.DoctorID,
		DoctorName: req.DoctorName,
		Date:       req.Date,
		Time:       req.Time,
		Status:     StatusConfirmed,
		UniqueCode: code,
		CreatedAt:  now,
	}
	if err := s.repo.InsertConfirmation(ctx, conf); err != nil {
		s.logger.Error("bookings: confirmation write failed after patient insert, patient record orphaned",
			"code", code, "patient_id", patient.ID, "error", err)
		return "", fmt.Errorf("bookings: save confirmation: %w", err)
	}

	key := SlotKey{DoctorID: req.DoctorID, Date: req.Date, Time: req.Time}
	if err := s.repo.MarkSlotBooked(ctx, key); err != nil {
		s.logger.Error("bookings: slot marker write failed, slot may be re-offered",
			"code", code, "doctor_id", req.DoctorID, "date", req.Date, "time", req.Time, "error", err)
		return "", fmt.Errorf("bookings: mark slot booked: %w", err)
	}

	s.logger.Info("booking confirmed",
		"code", code, "doctor_id", req.DoctorID, "date", req.Date, "time", req.Time)
	return code, nil
}

// generateCode draws random 8-digit codes until one is not already
// associated with a patient record. The 8-digit space makes collisions rare
// but not impossible; no retry bound is enforced.
func (s *Service) generateCode(ctx context.Context) (string, error) {
	for {
		n, err := rand.Int(rand.Reader, codeSpace)
		if err != nil {
			return "", fmt.Errorf("bookings: generate code: %w", err)
		}
		code := fmt.Sprintf("%0*d", codeDigits, n)

		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("bookings: verify code uniqueness: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

// Lookup resolves a confirmation code into the combined booking view.
// Returns ErrNotFound when the code does not resolve to both a patient and
// a confirmation record.
func (s *Service) Lookup(ctx context.Context, code string) (*BookingView, error) {
	patient, err := s.repo.FindPatientByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: lookup patient: %w", err)
	}

	conf, err := s.repo.FindConfirmationByPatient(ctx, patient.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: lookup confirmation: %w", err)
	}

	// Specialty is resolved best-effort; a missing doctor does not fail the
	// lookup.
	specialty := "N/A"
	if s.directory != nil {
		if doc, derr := s.directory.Get(ctx, conf.DoctorID); derr == nil && doc != nil {
			specialty = doc.Specialty
		}
	}

	return &BookingView{
		UniqueCode: code,
		Patient: PatientSummary{
			Name:    patient.Name,
			Age:     patient.Age,
			Gender:  patient.Gender,
			Blood:   patient.BloodGroup,
			Contact: patient.Contact,
		},
		Doctor: DoctorSummary{
			Name:      conf.DoctorName,
			Specialty: specialty,
		},
		Appointment: AppointmentSummary{
			Date:      conf.Date,
			Time:      conf.Time,
			Status:    conf.Status,
			CreatedAt: conf.CreatedAt,
		},
		ConfirmationID: conf.ID,
		PatientID:      patient.ID,
	}, nil
}

// BookedTimes exposes the reserved times for a doctor and date so the
// availability engine can reconcile generated slots.
func (s *Service) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	return s.repo.BookedTimes(ctx, doctorID, date)
}
