package booking

import "time"

// Status is the only persisted lifecycle flag. "Active" and "ended" are
// derived from the end time, never stored.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID              string    `json:"id"`
	GymID           string    `json:"gym_id"`
	UserID          string    `json:"user_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	HourlyRateCents int64     `json:"hourly_rate_cents"` // snapshotted at creation, extensions reuse it
	Status          Status    `json:"status"`
	Reference       string    `json:"reference"`
	CheckInCode     string    `json:"check_in_code"`
	ExtensionCount  int       `json:"extension_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime) / time.Minute)
}

// State is the derived session state.
type State string

const (
	StateActive    State = "active"
	StateEnded     State = "ended"
	StateCancelled State = "cancelled"
)

// StateOf is the single place session state is derived. Every consumer
// (dashboard, check-in, history, QR validation) goes through it; exactly one
// state holds at any instant.
func StateOf(b *Booking, now time.Time) State {
	switch {
	case b.Status == StatusCancelled:
		return StateCancelled
	case b.EndTime.After(now):
		return StateActive
	default:
		return StateEnded
	}
}

// Confirmation is what a successful creation hands back to the caller.
type Confirmation struct {
	Booking     *Booking `json:"booking"`
	Reference   string   `json:"reference"`
	CheckInCode string   `json:"check_in_code"`
	PriceCents  int64    `json:"price_cents"`
}
