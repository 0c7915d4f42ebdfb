package gym

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrNotFound = errors.New("gym not found")

// Catalog is the read-only gym lookup the booking store prices against. It
// is immutable for the lifetime of a booking, so implementations may serve
// concurrent reads without locking.
type Catalog interface {
	Get(ctx context.Context, id string) (*Gym, error)
	List(ctx context.Context) ([]Gym, error)
	HourlyRate(ctx context.Context, id string) (int64, error)
}

// StaticCatalog serves a fixed set of gyms from memory.
type StaticCatalog struct {
	gyms map[string]Gym
}

func NewStaticCatalog(gyms []Gym) *StaticCatalog {
	m := make(map[string]Gym, len(gyms))
	for _, g := range gyms {
		m[g.ID] = g
	}
	return &StaticCatalog{gyms: m}
}

// LoadCatalog reads a JSON array of gyms from path.
func LoadCatalog(path string) (*StaticCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gym catalog: %w", err)
	}
	var gyms []Gym
	if err := json.Unmarshal(data, &gyms); err != nil {
		return nil, fmt.Errorf("decode gym catalog: %w", err)
	}
	return NewStaticCatalog(gyms), nil
}

func (c *StaticCatalog) Get(_ context.Context, id string) (*Gym, error) {
	g, ok := c.gyms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (c *StaticCatalog) List(_ context.Context) ([]Gym, error) {
	out := make([]Gym, 0, len(c.gyms))
	for _, g := range c.gyms {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *StaticCatalog) HourlyRate(ctx context.Context, id string) (int64, error) {
	g, err := c.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return g.HourlyRateCents, nil
}
