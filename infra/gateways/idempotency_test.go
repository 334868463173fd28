package gateways

import (
	"context"
	"testing"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

func TestIdempotencyReserveAndReplay(t *testing.T) {
	g := NewIdempotencyGatewayMemory()
	ctx := context.Background()

	result, err := g.ReserveIdempotencyKey(ctx, "key-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for fresh key, got %+v", result)
	}

	booking := &protocols.Booking{ID: 42, CustomerName: "Asha"}
	if err := g.MarkSuccess(ctx, "key-1", booking); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	result, err = g.ReserveIdempotencyKey(ctx, "key-1")
	if err != nil {
		t.Fatalf("expected nil error on replay, got %v", err)
	}
	if result == nil || !result.Success || result.Booking == nil || result.Booking.ID != 42 {
		t.Fatalf("expected replay to return stored booking, got %+v", result)
	}
}

func TestIdempotencyProcessingConflict(t *testing.T) {
	g := NewIdempotencyGatewayMemory()
	ctx := context.Background()

	if _, err := g.ReserveIdempotencyKey(ctx, "key-2"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := g.ReserveIdempotencyKey(ctx, "key-2"); err == nil {
		t.Fatalf("expected error for in-flight key, got nil")
	}
}

func TestIdempotencyMarkFailureFreesKey(t *testing.T) {
	g := NewIdempotencyGatewayMemory()
	ctx := context.Background()

	if _, err := g.ReserveIdempotencyKey(ctx, "key-3"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := g.MarkFailure(ctx, "key-3"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	result, err := g.ReserveIdempotencyKey(ctx, "key-3")
	if err != nil {
		t.Fatalf("expected key to be reusable after failure, got %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result after failure, got %+v", result)
	}
}
