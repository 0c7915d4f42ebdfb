package wallet

import "time"

// Kind classifies a ledger transaction. Deposit, refund and bonus credit the
// balance; payment, withdrawal and penalty debit it.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindPayment    Kind = "payment"
	KindRefund     Kind = "refund"
	KindWithdrawal Kind = "withdrawal"
	KindBonus      Kind = "bonus"
	KindPenalty    Kind = "penalty"
)

func (k Kind) Credits() bool {
	switch k {
	case KindDeposit, KindRefund, KindBonus:
		return true
	}
	return false
}

// Status of a transaction. Only completed transactions affect the balance.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Account is the cached view of the ledger: the balance it carries must
// always equal the fold of the completed transactions.
type Account struct {
	BalanceCents int64  `json:"balance_cents"`
	Currency     string `json:"currency"`
}

// Transaction is immutable once appended. The log is the source of truth;
// BalanceBefore/BalanceAfter snapshot the cached balance around the append.
type Transaction struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	AmountCents    int64     `json:"amount_cents"` // positive magnitude
	Status         Status    `json:"status"`
	BookingID      string    `json:"booking_id,omitempty"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
	BalanceBefore  int64     `json:"balance_before_cents"`
	BalanceAfter   int64     `json:"balance_after_cents"`
}

// SignedAmount is the transaction's contribution to the balance: positive
// for crediting kinds, negative for debiting ones.
func (t Transaction) SignedAmount() int64 {
	if t.Kind.Credits() {
		return t.AmountCents
	}
	return -t.AmountCents
}
