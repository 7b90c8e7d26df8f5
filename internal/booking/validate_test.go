package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		wantTime string
	}{
		{"full time kept", Input{Date: "2025-06-01", Time: "19:00:00", PeopleCount: intp(4)}, "19:00:00"},
		{"short time normalized", Input{Date: "2025-06-01", Time: "19:00", PeopleCount: intp(4)}, "19:00:00"},
		{"midnight", Input{Date: "2025-12-31", Time: "00:00", PeopleCount: intp(1)}, "00:00:00"},
		{"last minute of day", Input{Date: "2025-12-31", Time: "23:59:59", PeopleCount: intp(12)}, "23:59:59"},
		{"leap day", Input{Date: "2024-02-29", Time: "18:30", PeopleCount: intp(2)}, "18:30:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := Validate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.in.Date, slot.Date)
			assert.Equal(t, tc.wantTime, slot.Time)
			assert.Equal(t, *tc.in.PeopleCount, slot.PeopleCount)
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{"missing date", Input{Time: "19:00", PeopleCount: intp(4)}, ErrMissingFields},
		{"missing time", Input{Date: "2025-06-01", PeopleCount: intp(4)}, ErrMissingFields},
		{"missing people count", Input{Date: "2025-06-01", Time: "19:00"}, ErrMissingFields},
		{"date wrong shape", Input{Date: "01-06-2025", Time: "19:00", PeopleCount: intp(4)}, ErrInvalidDate},
		{"date with time attached", Input{Date: "2025-06-01T00", Time: "19:00", PeopleCount: intp(4)}, ErrInvalidDate},
		{"month 13", Input{Date: "2025-13-01", Time: "19:00", PeopleCount: intp(4)}, ErrInvalidDate},
		{"february 30th", Input{Date: "2025-02-30", Time: "19:00", PeopleCount: intp(4)}, ErrInvalidDate},
		{"non leap february 29th", Input{Date: "2025-02-29", Time: "19:00", PeopleCount: intp(4)}, ErrInvalidDate},
		{"hour 24", Input{Date: "2025-06-01", Time: "24:00", PeopleCount: intp(4)}, ErrInvalidTime},
		{"single digit minute", Input{Date: "2025-06-01", Time: "19:5", PeopleCount: intp(4)}, ErrInvalidTime},
		{"minute 60", Input{Date: "2025-06-01", Time: "19:60", PeopleCount: intp(4)}, ErrInvalidTime},
		{"second 60", Input{Date: "2025-06-01", Time: "19:00:60", PeopleCount: intp(4)}, ErrInvalidTime},
		{"zero party", Input{Date: "2025-06-01", Time: "19:00", PeopleCount: intp(0)}, ErrInvalidPartySize},
		{"negative party", Input{Date: "2025-06-01", Time: "19:00", PeopleCount: intp(-3)}, ErrInvalidPartySize},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateHasNoSideEffects(t *testing.T) {
	n := 4
	in := Input{Date: "2025-06-01", Time: "19:00", PeopleCount: &n}
	first, err := Validate(in)
	require.NoError(t, err)
	second, err := Validate(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, n)
	assert.Equal(t, "19:00", in.Time, "input must not be mutated")
}
