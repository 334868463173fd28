package gateways

import (
	"context"
	"sync"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

// IdempotencyGatewayMemory is the fallback used when no Redis address is
// configured. State is lost on restart, which is acceptable for a demo.
type IdempotencyGatewayMemory struct {
	mutex sync.Mutex
	keys  map[string]*idempotencyState
}

type idempotencyState struct {
	Status  string
	Booking *protocols.Booking
}

func NewIdempotencyGatewayMemory() *IdempotencyGatewayMemory {
	return &IdempotencyGatewayMemory{
		keys: make(map[string]*idempotencyState),
	}
}

func (g *IdempotencyGatewayMemory) ReserveIdempotencyKey(ctx context.Context, idempotencyKey string) (*protocols.IdempotencyKeyResult, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	state, exists := g.keys[idempotencyKey]
	if exists {
		if state.Status == "success" {
			return &protocols.IdempotencyKeyResult{Success: true, Booking: state.Booking}, nil
		}
		if state.Status == "processing" {
			return nil, protocols.ErrIdempotencyKeyInFlight
		}
		delete(g.keys, idempotencyKey)
	}

	g.keys[idempotencyKey] = &idempotencyState{Status: "processing"}
	return nil, nil
}

func (g *IdempotencyGatewayMemory) MarkSuccess(ctx context.Context, idempotencyKey string, booking *protocols.Booking) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if state, exists := g.keys[idempotencyKey]; exists {
		state.Status = "success"
		state.Booking = booking
	}
	return nil
}

func (g *IdempotencyGatewayMemory) MarkFailure(ctx context.Context, idempotencyKey string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.keys, idempotencyKey)
	return nil
}
