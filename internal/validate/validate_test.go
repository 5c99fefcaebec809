package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "John Doe", want: "John Doe"},
		{name: "trims whitespace", input: "  Asha Rao  ", want: "Asha Rao"},
		{name: "empty", input: "", wantErr: true},
		{name: "only spaces", input: "   ", wantErr: true},
		{name: "digits rejected", input: "John 2", wantErr: true},
		{name: "punctuation rejected", input: "O'Neil", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBloodGroup(t *testing.T) {
	for _, bg := range BloodGroups() {
		got, err := BloodGroup(bg)
		require.NoError(t, err)
		assert.Equal(t, bg, got)
	}

	// Case-insensitive with normalization.
	got, err := BloodGroup("ab+")
	require.NoError(t, err)
	assert.Equal(t, "AB+", got)

	got, err = BloodGroup(" o- ")
	require.NoError(t, err)
	assert.Equal(t, "O-", got)

	for _, bad := range []string{"", "C+", "AB", "A"} {
		_, err := BloodGroup(bad)
		assert.ErrorIs(t, err, ErrInvalidBloodGroup, "input %q", bad)
	}
}

func TestAge(t *testing.T) {
	// Accepted iff all digits and 1 <= age <= 120.
	for _, ok := range []string{"1", "30", "120"} {
		got, err := Age(ok)
		require.NoError(t, err, "age %s", ok)
		assert.Equal(t, ok, got)
	}

	for _, bad := range []string{"0", "121", "150", "-5", "abc", "12a", "", "3.5"} {
		_, err := Age(bad)
		assert.ErrorIs(t, err, ErrInvalidAge, "age %q", bad)
	}
}

func TestGender(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Male", "Male"},
		{"male", "Male"},
		{"FEMALE", "Female"},
		{"other", "Other"},
		{" Other ", "Other"},
	}
	for _, tt := range tests {
		got, err := Gender(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "unknown", "m"} {
		_, err := Gender(bad)
		assert.ErrorIs(t, err, ErrInvalidGender, "input %q", bad)
	}
}

func TestContactNormalizesToTrailingTenDigits(t *testing.T) {
	// Every accepted prefix variant stores exactly the trailing 10 digits.
	for _, prefix := range []string{"", "+91", "91", "0"} {
		t.Run(fmt.Sprintf("prefix %q", prefix), func(t *testing.T) {
			got, err := Contact(prefix + "9876543210")
			require.NoError(t, err)
			assert.Equal(t, "9876543210", got)
		})
	}
}

func TestContactRejections(t *testing.T) {
	bad := []string{
		"",
		"12345",
		"5876543210",    // leading digit must be 6-9
		"98765432101",   // 11 digits without a valid prefix
		"+929876543210", // wrong country prefix
		"98765 43210",   // embedded space
		"abcdefghij",
	}
	for _, input := range bad {
		_, err := Contact(input)
		assert.ErrorIs(t, err, ErrInvalidContact, "input %q", input)
	}
}
