package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/gym"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/pricing"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/wallet"
)

// Store owns the set of bookings and their lifecycle. Mutations are
// serialized by a single mutex and the ledger debit always completes before
// a booking or extension is materialized, so a failed charge never leaves a
// paid-for phantom.
type Store struct {
	mu       sync.Mutex
	bookings map[string]*Booking
	ledger   *wallet.Ledger
	catalog  gym.Catalog
	store    persist.Adapter
	clock    clock.Clock
}

type bookingsBlob struct {
	Bookings []Booking `json:"bookings"`
}

// NewStore loads the bookings blob, seeding an empty set when none exists.
func NewStore(ctx context.Context, ledger *wallet.Ledger, catalog gym.Catalog, adapter persist.Adapter, clk clock.Clock) (*Store, error) {
	s := &Store{
		bookings: make(map[string]*Booking),
		ledger:   ledger,
		catalog:  catalog,
		store:    adapter,
		clock:    clk,
	}

	data, err := adapter.Load(ctx, persist.BookingsKey)
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return s, nil
		}
		return nil, &persist.Error{Op: "load", Key: persist.BookingsKey, Err: err}
	}

	var blob bookingsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decode bookings blob: %w", err)
	}
	for i := range blob.Bookings {
		b := blob.Bookings[i]
		s.bookings[b.ID] = &b
	}
	return s, nil
}

// Create reserves and charges a session in one call: single-active-session
// check, rate lookup, pricing, ledger debit, then the booking row. The
// booking reference doubles as the charge's idempotency key, so a retried
// create bills at most once.
func (s *Store) Create(ctx context.Context, userID, gymID string, start time.Time, durationMinutes int) (*Confirmation, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.activeLocked(userID, now) != nil {
		return nil, ErrActiveSessionExists
	}

	rate, err := s.catalog.HourlyRate(ctx, gymID)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrUnknownGym
		}
		return nil, err
	}

	cost := pricing.Cost(durationMinutes, rate)
	id := uuid.NewString()
	reference := newReference()

	if _, err := s.ledger.Debit(ctx, cost, wallet.KindPayment, reference, id); err != nil {
		return nil, err
	}

	b := &Booking{
		ID:              id,
		GymID:           gymID,
		UserID:          userID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(durationMinutes) * time.Minute),
		HourlyRateCents: rate,
		Status:          StatusBooked,
		Reference:       reference,
		CheckInCode:     newCheckInCode(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.bookings[id] = b

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	cp := *b
	return &Confirmation{
		Booking:     &cp,
		Reference:   b.Reference,
		CheckInCode: b.CheckInCode,
		PriceCents:  cost,
	}, nil
}

// Extend pushes the end time of a live session out by addMinutes, charging
// at the rate snapshotted when the booking was created. Each call gets its
// own idempotency key, so repeated taps are each billed exactly once.
func (s *Store) Extend(ctx context.Context, userID, bookingID string, addMinutes int) (*Booking, error) {
	if addMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}

	now := s.clock.Now()
	switch StateOf(b, now) {
	case StateCancelled:
		return nil, ErrAlreadyCancelled
	case StateEnded:
		return nil, ErrSessionEnded
	}

	cost := pricing.Cost(addMinutes, b.HourlyRateCents)
	key := fmt.Sprintf("%s:ext:%d:%dm:%d", b.ID, b.ExtensionCount+1, addMinutes, now.UnixNano())

	if _, err := s.ledger.Debit(ctx, cost, wallet.KindPayment, key, b.ID); err != nil {
		return nil, err
	}

	b.EndTime = b.EndTime.Add(time.Duration(addMinutes) * time.Minute)
	b.ExtensionCount++
	b.UpdatedAt = now

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	cp := *b
	return &cp, nil
}

// Cancel marks a booking cancelled. It never touches the ledger:
// cancellations do not refund, for any booking state.
func (s *Store) Cancel(ctx context.Context, userID, bookingID string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	b.Status = StatusCancelled
	b.UpdatedAt = s.clock.Now()

	if err := s.saveLocked(ctx); err != nil {
		return nil, err
	}

	cp := *b
	return &cp, nil
}

// Get returns the caller's booking by id.
func (s *Store) Get(userID, bookingID string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, ErrNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	cp := *b
	return &cp, nil
}

// StatusOf reports the persisted status of any booking, without an
// ownership check. The QR verifier uses it; it never mutates state.
func (s *Store) StatusOf(bookingID string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return "", false
	}
	return b.Status, true
}

// ListByUser returns the caller's bookings, newest first.
func (s *Store) ListByUser(userID string) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ActiveSession is the single authoritative "is there an active session"
// query. If more than one booking somehow qualifies, the one ending soonest
// wins.
func (s *Store) ActiveSession(userID string, now time.Time) *Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.activeLocked(userID, now)
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

func (s *Store) activeLocked(userID string, now time.Time) *Booking {
	var best *Booking
	for _, b := range s.bookings {
		if b.UserID != userID || StateOf(b, now) != StateActive {
			continue
		}
		if best == nil || b.EndTime.Before(best.EndTime) {
			best = b
		}
	}
	return best
}

func (s *Store) saveLocked(ctx context.Context) error {
	blob := bookingsBlob{Bookings: make([]Booking, 0, len(s.bookings))}
	for _, b := range s.bookings {
		blob.Bookings = append(blob.Bookings, *b)
	}
	sort.Slice(blob.Bookings, func(i, j int) bool {
		return blob.Bookings[i].CreatedAt.Before(blob.Bookings[j].CreatedAt)
	})

	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode bookings blob: %w", err)
	}
	if err := s.store.Save(ctx, persist.BookingsKey, data); err != nil {
		return &persist.Error{Op: "save", Key: persist.BookingsKey, Err: err}
	}
	return nil
}

func newReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "GF-" + raw[:8]
}

func newCheckInCode() string {
	u := uuid.New()
	code := (uint32(u[0])<<24 | uint32(u[1])<<16 | uint32(u[2])<<8 | uint32(u[3])) % 1000000
	return fmt.Sprintf("%06d", code)
}
