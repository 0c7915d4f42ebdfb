package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/clock"
	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/persist"
)

func newTestLedger(t *testing.T) (*Ledger, *persist.MemoryStore, *clock.Fake) {
	t.Helper()
	store := persist.NewMemoryStore()
	clk := clock.NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	l, err := NewLedger(context.Background(), store, clk, "EUR")
	require.NoError(t, err)
	return l, store, clk
}

func TestLedger_SeedsEmptyWhenNoBlob(t *testing.T) {
	l, _, _ := newTestLedger(t)
	assert.Equal(t, int64(0), l.Balance().BalanceCents)
	assert.Equal(t, "EUR", l.Balance().Currency)
	assert.Empty(t, l.Transactions())
}

func TestLedger_CreditIncreasesBalance(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	tx, err := l.Credit(ctx, 2000, KindDeposit, "topup-1")
	require.NoError(t, err)

	assert.Equal(t, int64(2000), l.Balance().BalanceCents)
	assert.Equal(t, StatusCompleted, tx.Status)
	assert.Equal(t, int64(0), tx.BalanceBefore)
	assert.Equal(t, int64(2000), tx.BalanceAfter)
}

func TestLedger_DebitDecreasesBalance(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 2000, KindDeposit, "topup-1")
	require.NoError(t, err)

	tx, err := l.Debit(ctx, 1500, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)

	assert.Equal(t, int64(500), l.Balance().BalanceCents)
	assert.Equal(t, "booking-1", tx.BookingID)
	assert.Equal(t, int64(-1500), tx.SignedAmount())
}

func TestLedger_DebitInsufficientFundsMakesNoMutation(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 500, KindDeposit, "topup-1")
	require.NoError(t, err)

	_, err = l.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(1000), insufficient.RequiredCents)
	assert.Equal(t, int64(500), insufficient.AvailableCents)

	assert.Equal(t, int64(500), l.Balance().BalanceCents)
	assert.Len(t, l.Transactions(), 1)
	require.NoError(t, l.ValidateIntegrity())
}

func TestLedger_DebitIdempotency(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 2000, KindDeposit, "topup-1")
	require.NoError(t, err)

	first, err := l.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)

	second, err := l.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)

	// One completed transaction, one balance change.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1000), l.Balance().BalanceCents)
	assert.Len(t, l.Transactions(), 2) // deposit + single payment
}

func TestLedger_CreditIdempotency(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	first, err := l.Credit(ctx, 700, KindDeposit, "topup-1")
	require.NoError(t, err)
	second, err := l.Credit(ctx, 700, KindDeposit, "topup-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(700), l.Balance().BalanceCents)
}

func TestLedger_RejectsInvalidInput(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 0, KindDeposit, "k")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = l.Credit(ctx, -5, KindDeposit, "k")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = l.Credit(ctx, 100, KindDeposit, "")
	assert.ErrorIs(t, err, ErrEmptyIdempotencyKey)

	_, err = l.Credit(ctx, 100, KindPayment, "k")
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = l.Debit(ctx, 100, KindDeposit, "k", "")
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestLedger_TotalPaidSumsLinkedPayments(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 5000, KindDeposit, "topup-1")
	require.NoError(t, err)

	_, err = l.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 500, KindPayment, "ext-1", "booking-1")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 800, KindPayment, "charge-2", "booking-2")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 300, KindWithdrawal, "wd-1", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1500), l.TotalPaid("booking-1"))
	assert.Equal(t, int64(800), l.TotalPaid("booking-2"))
	assert.Equal(t, int64(0), l.TotalPaid("booking-3"))
}

func TestLedger_BalanceEqualsFoldOfLog(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 5000, KindDeposit, "topup-1")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 1200, KindPayment, "charge-1", "b1")
	require.NoError(t, err)
	_, err = l.Credit(ctx, 250, KindBonus, "bonus-1")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 90, KindPenalty, "pen-1", "")
	require.NoError(t, err)

	var derived int64
	for _, tx := range l.Transactions() {
		if tx.Status == StatusCompleted {
			derived += tx.SignedAmount()
		}
	}
	assert.Equal(t, derived, l.Balance().BalanceCents)
	require.NoError(t, l.ValidateIntegrity())
}

func TestLedger_RoundTripsThroughBlob(t *testing.T) {
	l, store, clk := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 3000, KindDeposit, "topup-1")
	require.NoError(t, err)
	_, err = l.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)

	reloaded, err := NewLedger(ctx, store, clk, "EUR")
	require.NoError(t, err)

	assert.Equal(t, l.Balance(), reloaded.Balance())
	assert.Equal(t, l.Transactions(), reloaded.Transactions())
	assert.Equal(t, int64(1000), reloaded.TotalPaid("booking-1"))

	// The idempotency index must survive the reload too.
	tx, err := reloaded.Debit(ctx, 1000, KindPayment, "charge-1", "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), reloaded.Balance().BalanceCents)
	assert.Equal(t, int64(1000), tx.AmountCents)
}

func TestLedger_CorruptBlobGoesReadOnly(t *testing.T) {
	l, store, clk := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Credit(ctx, 1000, KindDeposit, "topup-1")
	require.NoError(t, err)

	// Tamper with the cached balance in the stored blob.
	data, err := store.Load(ctx, persist.WalletKey)
	require.NoError(t, err)
	var blob walletBlob
	require.NoError(t, json.Unmarshal(data, &blob))
	blob.BalanceCents = 99999
	tampered, err := json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, persist.WalletKey, tampered))

	reloaded, err := NewLedger(ctx, store, clk, "EUR")
	var integrity *IntegrityError
	require.ErrorAs(t, err, &integrity)
	assert.Equal(t, int64(99999), integrity.CachedCents)
	assert.Equal(t, int64(1000), integrity.DerivedCents)

	// Reads keep working, mutations are refused, the log is never rewritten.
	assert.Len(t, reloaded.Transactions(), 1)
	_, err = reloaded.Credit(ctx, 100, KindDeposit, "topup-2")
	require.ErrorAs(t, err, &integrity)
}

type failingStore struct {
	inner *persist.MemoryStore
	fail  bool
}

func (s *failingStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Load(ctx, key)
}

func (s *failingStore) Save(ctx context.Context, key string, data []byte) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.inner.Save(ctx, key, data)
}

func TestLedger_SaveFailureSurfacesPersistenceError(t *testing.T) {
	store := &failingStore{inner: persist.NewMemoryStore()}
	clk := clock.NewFake(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	l, err := NewLedger(ctx, store, clk, "EUR")
	require.NoError(t, err)

	store.fail = true
	_, err = l.Credit(ctx, 1000, KindDeposit, "topup-1")

	var pe *persist.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "save", pe.Op)

	// In-memory state is ahead of durable state and still internally
	// consistent; the startup integrity check reconciles after a crash.
	assert.Equal(t, int64(1000), l.Balance().BalanceCents)
	require.NoError(t, l.ValidateIntegrity())
}
