// Package validate holds the per-field input rules for the intake
// conversation. Each validator takes raw user text and returns the
// normalized value or a sentinel error the conversation layer turns into a
// re-prompt.
package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidName is returned when a name contains anything but letters and spaces.
	ErrInvalidName = errors.New("validate: name must contain only letters and spaces")

	// ErrInvalidBloodGroup is returned when the blood group is not one of the eight known groups.
	ErrInvalidBloodGroup = errors.New("validate: unknown blood group")

	// ErrInvalidAge is returned when the age is not an integer in [1, 120].
	ErrInvalidAge = errors.New("validate: age must be a number between 1 and 120")

	// ErrInvalidGender is returned when the gender is not Male, Female or Other.
	ErrInvalidGender = errors.New("validate: unknown gender")

	// ErrInvalidContact is returned when the contact is not a valid Indian mobile number.
	ErrInvalidContact = errors.New("validate: invalid mobile number")
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	agePattern  = regexp.MustCompile(`^\d+$`)

	// Optional +91 / 91 / 0 prefix, then 10 digits starting with 6-9.
	contactPattern = regexp.MustCompile(`^(?:\+91|91|0)?[6-9]\d{9}$`)
)

var bloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var genders = []string{"Male", "Female", "Other"}

// BloodGroups returns the selectable blood group options in display order.
func BloodGroups() []string {
	out := make([]string, len(bloodGroups))
	copy(out, bloodGroups)
	return out
}

// Genders returns the selectable gender options in display order.
func Genders() []string {
	out := make([]string, len(genders))
	copy(out, genders)
	return out
}

// Name validates a patient name.
func Name(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || !namePattern.MatchString(name) {
		return "", ErrInvalidName
	}
	return name, nil
}

// BloodGroup validates a blood group case-insensitively and normalizes it to
// upper case.
func BloodGroup(raw string) (string, error) {
	group := strings.ToUpper(strings.TrimSpace(raw))
	for _, bg := range bloodGroups {
		if group == bg {
			return group, nil
		}
	}
	return "", ErrInvalidBloodGroup
}

// Age validates an all-digit age in [1, 120]. The digit string is returned
// unchanged so prompts can echo exactly what the patient typed.
func Age(raw string) (string, error) {
	age := strings.TrimSpace(raw)
	if !agePattern.MatchString(age) {
		return "", ErrInvalidAge
	}
	n, err := strconv.Atoi(age)
	if err != nil || n < 1 || n > 120 {
		return "", ErrInvalidAge
	}
	return age, nil
}

// Gender validates a gender case-insensitively and normalizes it to
// title case.
func Gender(raw string) (string, error) {
	g := strings.ToLower(strings.TrimSpace(raw))
	for _, opt := range genders {
		if g == strings.ToLower(opt) {
			return opt, nil
		}
	}
	return "", ErrInvalidGender
}

// Contact validates an Indian mobile number with an optional +91/91/0 prefix
// and normalizes it to the trailing 10 digits.
func Contact(raw string) (string, error) {
	contact := strings.TrimSpace(raw)
	if !contactPattern.MatchString(contact) {
		return "", ErrInvalidContact
	}
	return contact[len(contact)-10:], nil
}
