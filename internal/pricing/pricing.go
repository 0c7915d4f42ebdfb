package pricing

// Cost prices a session of durationMinutes at hourlyRateCents per hour and
// returns the amount in minor currency units, rounding half-up on the exact
// rational result. The same inputs always produce the same value, which the
// ledger relies on for idempotent retries and receipt re-verification.
//
// Negative or zero duration is a caller contract violation and is rejected
// at the call sites, not here.
func Cost(durationMinutes int, hourlyRateCents int64) int64 {
	total := hourlyRateCents * int64(durationMinutes)
	return (total + 30) / 60
}
