package session

import (
	"time"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/booking"
)

// Outcome is the closed set of verification results.
type Outcome string

const (
	OutcomeInvalid    Outcome = "invalid"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeWrongGym   Outcome = "wrong_gym"
	OutcomeNotStarted Outcome = "not_started"
	OutcomeExpired    Outcome = "expired"
	OutcomeValid      Outcome = "valid"
)

type Result struct {
	Outcome          Outcome `json:"outcome"`
	RemainingMinutes int     `json:"remaining_minutes,omitempty"` // set only when valid
}

// Validate checks an encoded payload for the gym expecting the visitor. The
// checks run in a fixed priority order: a tampered payload reads as invalid
// before any business mismatch is reported, so forging fields leaks nothing
// about a legitimate booking.
func Validate(encoded, expectedGymID string, status booking.Status, now time.Time) Result {
	p, err := Decode(encoded)
	if err != nil || checksum(p) != p.Checksum {
		return Result{Outcome: OutcomeInvalid}
	}
	if status == booking.StatusCancelled {
		return Result{Outcome: OutcomeCancelled}
	}
	if p.GymID != expectedGymID {
		return Result{Outcome: OutcomeWrongGym}
	}
	if now.Before(p.Start) {
		return Result{Outcome: OutcomeNotStarted}
	}
	if now.After(p.End) {
		return Result{Outcome: OutcomeExpired}
	}

	remaining := int((p.End.Sub(now) + time.Minute - 1) / time.Minute)
	return Result{Outcome: OutcomeValid, RemainingMinutes: remaining}
}
