package persist

import (
	"context"
	"errors"
	"fmt"
)

// Blob keys used by the core stores.
const (
	WalletKey   = "wallet"
	BookingsKey = "bookings"
)

var ErrNotFound = errors.New("state blob not found")

// Adapter durably stores opaque serialized state blobs. Stores load their
// blob once at startup and save after every mutating operation.
type Adapter interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Error reports a failed load or save against a backend. A failed save
// leaves in-memory state ahead of durable state; callers must treat the
// operation as failed and retry the whole call.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("persist: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
