package bookings

import (
	"context"
	"sync"
)

// Repository is the persistence boundary for the booking transaction. It
// must support upsert-free inserts and the lookups the availability engine
// and code lookup need.
type Repository interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	InsertPatient(ctx context.Context, rec *PatientRecord) error
	InsertConfirmation(ctx context.Context, conf *Confirmation) error
	MarkSlotBooked(ctx context.Context, key SlotKey) error

	// BookedTimes returns the times already reserved for a doctor on a
	// date, in no particular order.
	BookedTimes(ctx context.Context, doctorID, date string) ([]string, error)

	FindPatientByCode(ctx context.Context, code string) (*PatientRecord, error)
	FindConfirmationByPatient(ctx context.Context, patientID string) (*Confirmation, error)
}

// MemoryRepository is the demo-mode repository used when no persistence
// layer is reachable. The mutex protects the maps from concurrent request
// handlers; it does not make slot reservation atomic across the
// read-then-write booking sequence.
type MemoryRepository struct {
	mu                    sync.RWMutex
	patientsByCode        map[string]PatientRecord
	confirmationByPatient map[string]Confirmation
	bookedSlots           map[SlotKey]struct{}
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		patientsByCode:        make(map[string]PatientRecord),
		confirmationByPatient: make(map[string]Confirmation),
		bookedSlots:           make(map[SlotKey]struct{}),
	}
}

// CodeExists reports whether a patient already carries the code.
func (r *MemoryRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.patientsByCode[code]
	return ok, nil
}

// InsertPatient stores a patient record keyed by its unique code.
func (r *MemoryRepository) InsertPatient(ctx context.Context, rec *PatientRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patientsByCode[rec.UniqueCode] = *rec
	return nil
}

// InsertConfirmation stores a confirmation keyed by patient id.
func (r *MemoryRepository) InsertConfirmation(ctx context.Context, conf *Confirmation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmationByPatient[conf.PatientID] = *conf
	return nil
}

// MarkSlotBooked records a booked-slot marker.
func (r *MemoryRepository) MarkSlotBooked(ctx context.Context, key SlotKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookedSlots[key] = struct{}{}
	return nil
}

// BookedTimes returns the reserved times for a doctor and date.
func (r *MemoryRepository) BookedTimes(ctx context.Context, doctorID, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var times []string
	for key := range r.bookedSlots {
		if key.DoctorID == doctorID && key.Date == date {
			times = append(times, key.Time)
		}
	}
	return times, nil
}

// FindPatientByCode returns the patient carrying the code.
func (r *MemoryRepository) FindPatientByCode(ctx context.Context, code string) (*PatientRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.patientsByCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// FindConfirmationByPatient returns the confirmation for a patient.
func (r *MemoryRepository) FindConfirmationByPatient(ctx context.Context, patientID string) (*Confirmation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conf, ok := r.confirmationByPatient[patientID]
	if !ok {
		return nil, ErrNotFound
	}
	return &conf, nil
}
