package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository serves the catalog from the gyms table when the service runs
// against Postgres.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, id string) (*Gym, error) {
	query := `
		SELECT id, name, address, hourly_rate_cents
		FROM gyms
		WHERE id = $1
	`

	var g Gym
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &g, nil
}

func (r *Repository) List(ctx context.Context) ([]Gym, error) {
	query := `
		SELECT id, name, address, hourly_rate_cents
		FROM gyms
		ORDER BY name ASC
	`

	var gyms []Gym
	if err := r.db.SelectContext(ctx, &gyms, query); err != nil {
		return nil, err
	}

	return gyms, nil
}

func (r *Repository) HourlyRate(ctx context.Context, id string) (int64, error) {
	query := `
		SELECT hourly_rate_cents
		FROM gyms
		WHERE id = $1
	`

	var rate int64
	err := r.db.GetContext(ctx, &rate, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	return rate, nil
}
