package protocols

import (
	"context"
	"errors"
)

// ErrIdempotencyKeyInFlight reports a key whose first request has not
// finished yet. Callers surface it as a conflict, unlike infrastructure
// failures from the gateway.
var ErrIdempotencyKeyInFlight = errors.New("idempotency key is already being processed")

type IdempotencyKeyResult struct {
	Success bool
	Booking *Booking
}

// IdempotencyGateway deduplicates booking creation when a client sends an
// Idempotency-Key header. A replay of a succeeded key returns the booking
// created the first time instead of inserting a second row.
type IdempotencyGateway interface {
	ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*IdempotencyKeyResult, error)
	MarkSuccess(ctx context.Context, idempotencyKey string, booking *Booking) error
	MarkFailure(ctx context.Context, idempotencyKey string) error
}
