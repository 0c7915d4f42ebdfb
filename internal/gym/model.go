package gym

// Gym is a read-only catalog entry. The hourly rate is snapshotted onto a
// booking at creation time and never re-read afterwards.
type Gym struct {
	ID              string `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Address         string `db:"address" json:"address"`
	HourlyRateCents int64  `db:"hourly_rate_cents" json:"hourly_rate_cents"`
}
