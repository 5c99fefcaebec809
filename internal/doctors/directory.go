package doctors

import (
	"context"
	"errors"
	"sync"
)

// ErrDoctorNotFound is returned when a doctor id does not resolve.
var ErrDoctorNotFound = errors.New("doctors: doctor not found")

// Directory lists the clinicians available for booking.
type Directory interface {
	List(ctx context.Context) ([]Doctor, error)
	Get(ctx context.Context, id string) (*Doctor, error)
}

// demoDoctors is the fixed dataset served when no directory backend is
// available.
func demoDoctors() []Doctor {
	return []Doctor{
		{
			ID:            "1",
			Name:          "Dr. Sarah Johnson",
			FirstName:     "Sarah",
			LastName:      "Johnson",
			Specialty:     "General Medicine",
			Qualification: "MBBS, MD",
			Availability:  "Mon-Fri 9AM-5PM",
			WorkStart:     "9:00 AM",
			WorkEnd:       "5:00 PM",
		},
		{
			ID:            "2",
			Name:          "Dr. Michael Chen",
			FirstName:     "Michael",
			LastName:      "Chen",
			Specialty:     "Cardiology",
			Qualification: "MBBS, DM Cardiology",
			Availability:  "Mon-Wed 10AM-4PM",
			WorkStart:     "10:00 AM",
			WorkEnd:       "4:00 PM",
		},
		{
			ID:            "3",
			Name:          "Dr. Emily Davis",
			FirstName:     "Emily",
			LastName:      "Davis",
			Specialty:     "Pediatrics",
			Qualification: "MBBS, MD Pediatrics",
			Availability:  "Tue-Sat 8AM-6PM",
			WorkStart:     "8:00 AM",
			WorkEnd:       "6:00 PM",
		},
	}
}

// MemoryDirectory serves a fixed doctor list. Used in demo mode and tests.
type MemoryDirectory struct {
	mu      sync.RWMutex
	doctors []Doctor
}

// NewMemoryDirectory creates a directory preloaded with the demo dataset.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{doctors: demoDoctors()}
}

// NewMemoryDirectoryWith creates a directory with an explicit doctor list.
func NewMemoryDirectoryWith(doctors []Doctor) *MemoryDirectory {
	return &MemoryDirectory{doctors: doctors}
}

// List returns all doctors in display order.
func (d *MemoryDirectory) List(ctx context.Context) ([]Doctor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out, nil
}

// Get returns the doctor with the given id.
func (d *MemoryDirectory) Get(ctx context.Context, id string) (*Doctor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, doc := range d.doctors {
		if doc.ID == id {
			found := doc
			return &found, nil
		}
	}
	return nil, ErrDoctorNotFound
}
