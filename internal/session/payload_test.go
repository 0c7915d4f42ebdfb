package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/booking"
)

func testBooking() *booking.Booking {
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	return &booking.Booking{
		ID:        "b-123",
		GymID:     "gym-1",
		UserID:    "user-1",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    booking.StatusBooked,
		Reference: "GF-A1B2C3D4",
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	b := testBooking()
	p1 := Generate(b)
	p2 := Generate(b)

	assert.Equal(t, p1, p2)
	assert.Len(t, p1.Checksum, checksumLength)
	assert.Equal(t, p1.Encode(), p2.Encode())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := Generate(testBooking())
	decoded, err := Decode(p.Encode())
	require.NoError(t, err)

	assert.Equal(t, p.BookingID, decoded.BookingID)
	assert.Equal(t, p.GymID, decoded.GymID)
	assert.Equal(t, p.UserID, decoded.UserID)
	assert.True(t, p.Start.Equal(decoded.Start))
	assert.True(t, p.End.Equal(decoded.End))
	assert.Equal(t, p.Reference, decoded.Reference)
	assert.Equal(t, p.Checksum, decoded.Checksum)
}

func TestValidate_LifecycleWindow(t *testing.T) {
	b := testBooking()
	encoded := Generate(b).Encode()

	tests := []struct {
		name string
		now  time.Time
		want Outcome
	}{
		{"before start", b.StartTime.Add(-time.Minute), OutcomeNotStarted},
		{"at start", b.StartTime, OutcomeValid},
		{"mid session", b.StartTime.Add(30 * time.Minute), OutcomeValid},
		{"at end", b.EndTime, OutcomeValid},
		{"after end", b.EndTime.Add(time.Second), OutcomeExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(encoded, b.GymID, booking.StatusBooked, tt.now)
			assert.Equal(t, tt.want, result.Outcome)
		})
	}
}

func TestValidate_RemainingMinutes(t *testing.T) {
	b := testBooking()
	encoded := Generate(b).Encode()

	result := Validate(encoded, b.GymID, booking.StatusBooked, b.StartTime.Add(30*time.Minute))
	require.Equal(t, OutcomeValid, result.Outcome)
	assert.Equal(t, 30, result.RemainingMinutes)

	// Partial minutes round up so the operator never sees "0 left" while
	// the window is still open.
	result = Validate(encoded, b.GymID, booking.StatusBooked, b.EndTime.Add(-30*time.Second))
	require.Equal(t, OutcomeValid, result.Outcome)
	assert.Equal(t, 1, result.RemainingMinutes)
}

func TestValidate_PriorityOrder(t *testing.T) {
	b := testBooking()
	encoded := Generate(b).Encode()
	afterEnd := b.EndTime.Add(time.Hour)

	// Wrong gym is reported before expiry.
	result := Validate(encoded, "other-gym", booking.StatusBooked, afterEnd)
	assert.Equal(t, OutcomeWrongGym, result.Outcome)

	// Cancellation is reported before wrong gym and expiry.
	result = Validate(encoded, "other-gym", booking.StatusCancelled, afterEnd)
	assert.Equal(t, OutcomeCancelled, result.Outcome)

	// A tampered payload is invalid before anything else, even when the
	// booking is cancelled.
	tampered := flipChar(encoded, len(encoded)/2)
	result = Validate(tampered, "other-gym", booking.StatusCancelled, afterEnd)
	assert.Equal(t, OutcomeInvalid, result.Outcome)
}

func TestValidate_Cancelled(t *testing.T) {
	b := testBooking()
	encoded := Generate(b).Encode()

	result := Validate(encoded, b.GymID, booking.StatusCancelled, b.StartTime.Add(10*time.Minute))
	assert.Equal(t, OutcomeCancelled, result.Outcome)
}

func TestValidate_TamperDetection(t *testing.T) {
	b := testBooking()
	encoded := Generate(b).Encode()
	during := b.StartTime.Add(10 * time.Minute)

	require.Equal(t, OutcomeValid, Validate(encoded, b.GymID, booking.StatusBooked, during).Outcome)

	// Flipping any single character must never yield a false Valid.
	for i := range encoded {
		tampered := flipChar(encoded, i)
		result := Validate(tampered, b.GymID, booking.StatusBooked, during)
		assert.Equalf(t, OutcomeInvalid, result.Outcome, "flip at position %d", i)
	}
}

func TestValidate_GarbageInput(t *testing.T) {
	now := time.Now()
	assert.Equal(t, OutcomeInvalid, Validate("", "gym-1", booking.StatusBooked, now).Outcome)
	assert.Equal(t, OutcomeInvalid, Validate("not base64 !!!", "gym-1", booking.StatusBooked, now).Outcome)
	assert.Equal(t, OutcomeInvalid, Validate("aGVsbG8", "gym-1", booking.StatusBooked, now).Outcome)
}

// flipChar replaces the character at position i with a different one from
// the base64 url alphabet.
func flipChar(s string, i int) string {
	replacement := byte('A')
	if s[i] == replacement {
		replacement = 'B'
	}
	return s[:i] + string(replacement) + s[i+1:]
}
