package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
)

// Ledger owns the balance and the append-only transaction log. All mutating
// calls go through a single mutex, so operations against one ledger are
// totally ordered. The serialized blob is written after every mutation and
// before the call returns.
type Ledger struct {
	mu       sync.Mutex
	account  Account
	txs      []Transaction
	byKey    map[string]int // idempotency key -> index into txs, completed only
	store    persist.Adapter
	clock    clock.Clock
	readOnly bool
}

type walletBlob struct {
	BalanceCents int64         `json:"balance_cents"`
	Currency     string        `json:"currency"`
	Transactions []Transaction `json:"transactions"`
}

// NewLedger loads the wallet blob, seeding a zero balance when none exists.
// A blob that fails the integrity check is loaded anyway but leaves the
// ledger in read-only mode: reads keep working, mutations return the
// IntegrityError. The log is never silently rewritten to match the cache.
func NewLedger(ctx context.Context, store persist.Adapter, clk clock.Clock, currency string) (*Ledger, error) {
	l := &Ledger{
		account: Account{Currency: currency},
		byKey:   make(map[string]int),
		store:   store,
		clock:   clk,
	}

	data, err := store.Load(ctx, persist.WalletKey)
	if err != nil {
		if errors.Is(err, persist.ErrNotFound) {
			return l, nil
		}
		return nil, &persist.Error{Op: "load", Key: persist.WalletKey, Err: err}
	}

	var blob walletBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decode wallet blob: %w", err)
	}

	l.account = Account{BalanceCents: blob.BalanceCents, Currency: blob.Currency}
	if l.account.Currency == "" {
		l.account.Currency = currency
	}
	l.txs = blob.Transactions
	for i, tx := range l.txs {
		if tx.Status == StatusCompleted && tx.IdempotencyKey != "" {
			l.byKey[tx.IdempotencyKey] = i
		}
	}

	if err := l.ValidateIntegrity(); err != nil {
		l.mu.Lock()
		l.readOnly = true
		l.mu.Unlock()
		return l, err
	}
	return l, nil
}

// Credit appends a crediting transaction and raises the balance. A completed
// transaction with the same idempotency key is returned unchanged instead of
// being duplicated.
func (l *Ledger) Credit(ctx context.Context, amountCents int64, kind Kind, idempotencyKey string) (Transaction, error) {
	if !kind.Credits() {
		return Transaction{}, ErrKindMismatch
	}
	return l.append(ctx, amountCents, kind, idempotencyKey, "")
}

// Debit appends a debiting transaction and lowers the balance. It fails with
// *InsufficientFundsError, making no mutation at all, when the balance does
// not cover the amount. bookingID links the charge to a booking for
// TotalPaid reporting; it may be empty for plain withdrawals.
func (l *Ledger) Debit(ctx context.Context, amountCents int64, kind Kind, idempotencyKey, bookingID string) (Transaction, error) {
	if kind.Credits() {
		return Transaction{}, ErrKindMismatch
	}
	return l.append(ctx, amountCents, kind, idempotencyKey, bookingID)
}

func (l *Ledger) append(ctx context.Context, amountCents int64, kind Kind, idempotencyKey, bookingID string) (Transaction, error) {
	if amountCents <= 0 {
		return Transaction{}, ErrNonPositiveAmount
	}
	if idempotencyKey == "" {
		return Transaction{}, ErrEmptyIdempotencyKey
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.readOnly {
		return Transaction{}, l.integrityLocked()
	}

	if i, ok := l.byKey[idempotencyKey]; ok {
		return l.txs[i], nil
	}

	signed := amountCents
	if !kind.Credits() {
		signed = -amountCents
		if l.account.BalanceCents < amountCents {
			return Transaction{}, &InsufficientFundsError{
				RequiredCents:  amountCents,
				AvailableCents: l.account.BalanceCents,
			}
		}
	}

	tx := Transaction{
		ID:             uuid.NewString(),
		Kind:           kind,
		AmountCents:    amountCents,
		Status:         StatusCompleted,
		BookingID:      bookingID,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      l.clock.Now(),
		BalanceBefore:  l.account.BalanceCents,
		BalanceAfter:   l.account.BalanceCents + signed,
	}

	l.txs = append(l.txs, tx)
	l.byKey[idempotencyKey] = len(l.txs) - 1
	l.account.BalanceCents = tx.BalanceAfter

	if err := l.saveLocked(ctx); err != nil {
		return tx, err
	}
	return tx, nil
}

func (l *Ledger) saveLocked(ctx context.Context) error {
	blob := walletBlob{
		BalanceCents: l.account.BalanceCents,
		Currency:     l.account.Currency,
		Transactions: l.txs,
	}
	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("encode wallet blob: %w", err)
	}
	if err := l.store.Save(ctx, persist.WalletKey, data); err != nil {
		return &persist.Error{Op: "save", Key: persist.WalletKey, Err: err}
	}
	return nil
}

// Balance returns the cached account snapshot.
func (l *Ledger) Balance() Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.account
}

// Transactions returns a copy of the log, newest first.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transaction, len(l.txs))
	for i, tx := range l.txs {
		out[len(l.txs)-1-i] = tx
	}
	return out
}

// TotalPaid sums the completed payment transactions linked to a booking, so
// the initial charge plus every extension is reported as one total.
func (l *Ledger) TotalPaid(bookingID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total int64
	for _, tx := range l.txs {
		if tx.Status == StatusCompleted && tx.Kind == KindPayment && tx.BookingID == bookingID {
			total += tx.AmountCents
		}
	}
	return total
}

// ValidateIntegrity recomputes the balance from the completed-transaction
// fold and compares it to the cache. A mismatch is a programming-error-grade
// fault, not a user condition.
func (l *Ledger) ValidateIntegrity() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.integrityLocked()
}

func (l *Ledger) integrityLocked() error {
	var derived int64
	for _, tx := range l.txs {
		if tx.Status == StatusCompleted {
			derived += tx.SignedAmount()
		}
	}
	if derived != l.account.BalanceCents {
		return &IntegrityError{CachedCents: l.account.BalanceCents, DerivedCents: derived}
	}
	return nil
}
