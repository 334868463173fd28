package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/kaapihouse/kaapi/domain/cart"
	"github.com/kaapihouse/kaapi/domain/menu"
	"github.com/kaapihouse/kaapi/infra"
	protocols "github.com/kaapihouse/kaapi/protocols"
)

type mockBookingGateway struct {
	created   []protocols.CreateBookingInput
	failAfter int // fail the request at this zero-based index, -1 never
}

func (m *mockBookingGateway) List(ctx context.Context) ([]protocols.Booking, error) {
	return nil, nil
}

func (m *mockBookingGateway) Create(ctx context.Context, input protocols.CreateBookingInput) (*protocols.Booking, error) {
	if m.failAfter >= 0 && len(m.created) == m.failAfter {
		return nil, errors.New("create failed")
	}
	m.created = append(m.created, input)
	return &protocols.Booking{ID: int64(len(m.created)), CustomerName: input.CustomerName, DrinkName: input.DrinkName, Price: input.Price}, nil
}

type mockRefresher struct {
	refreshCalls int
	refreshErr   error
}

func (m *mockRefresher) Refresh(ctx context.Context) error {
	m.refreshCalls++
	return m.refreshErr
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New(menu.Default())
	return c
}

func TestCheckoutEmptyCart(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	refresher := &mockRefresher{}
	uc := NewCheckout(gateway, refresher)

	err := uc.Checkout(context.Background(), testCart(t), "Asha")
	if !infra.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gateway.created) != 0 {
		t.Fatalf("expected no requests for empty cart, got %d", len(gateway.created))
	}
	if refresher.refreshCalls != 0 {
		t.Fatalf("expected no refresh for empty cart")
	}
}

func TestCheckoutBlankName(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	uc := NewCheckout(gateway, &mockRefresher{})

	c := testCart(t)
	c.ChangeQuantity("1", 1)
	err := uc.Checkout(context.Background(), c, "   ")
	if !infra.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(gateway.created) != 0 {
		t.Fatalf("expected no requests for blank name, got %d", len(gateway.created))
	}
}

func TestCheckoutOneRequestPerLine(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	refresher := &mockRefresher{}
	uc := NewCheckout(gateway, refresher)

	c := testCart(t)
	c.ChangeQuantity("2", 2) // Elaichi Cappuccino, 170 each
	c.ChangeQuantity("6", 1) // Masala Chai Latte, 110

	err := uc.Checkout(context.Background(), c, "  Asha ")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(gateway.created) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(gateway.created))
	}

	first := gateway.created[0]
	if first.CustomerName != "Asha" || first.DrinkName != "Elaichi Cappuccino" || first.Price != 340 {
		t.Fatalf("unexpected first request: %+v", first)
	}
	second := gateway.created[1]
	if second.DrinkName != "Masala Chai Latte" || second.Price != 110 {
		t.Fatalf("unexpected second request: %+v", second)
	}

	if !c.IsEmpty() {
		t.Fatalf("expected cart cleared after full success")
	}
	if refresher.refreshCalls != 1 {
		t.Fatalf("expected one refresh after success, got %d", refresher.refreshCalls)
	}
}

func TestCheckoutPartialFailureKeepsCart(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: 1}
	refresher := &mockRefresher{}
	uc := NewCheckout(gateway, refresher)

	c := testCart(t)
	c.ChangeQuantity("1", 1)
	c.ChangeQuantity("2", 1)
	c.ChangeQuantity("6", 1)

	err := uc.Checkout(context.Background(), c, "Asha")
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	// First line submitted, second failed, third never attempted.
	if len(gateway.created) != 1 {
		t.Fatalf("expected 1 submitted request, got %d", len(gateway.created))
	}
	if c.IsEmpty() {
		t.Fatalf("expected cart kept after partial failure")
	}
	if refresher.refreshCalls != 0 {
		t.Fatalf("expected no refresh after failure")
	}
}

func TestCheckoutRefreshFailureDoesNotFailCheckout(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	refresher := &mockRefresher{refreshErr: errors.New("fetch failed")}
	uc := NewCheckout(gateway, refresher)

	c := testCart(t)
	c.ChangeQuantity("1", 1)
	if err := uc.Checkout(context.Background(), c, "Asha"); err != nil {
		t.Fatalf("expected nil error despite refresh failure, got %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("expected cart cleared")
	}
}

func TestSubmitSingle(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	refresher := &mockRefresher{}
	uc := NewCheckout(gateway, refresher)

	err := uc.SubmitSingle(context.Background(), "Ravi", "Cardamom Mocha", 180)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(gateway.created) != 1 {
		t.Fatalf("expected 1 request, got %d", len(gateway.created))
	}
	if gateway.created[0].DrinkName != "Cardamom Mocha" || gateway.created[0].Price != 180 {
		t.Fatalf("unexpected request: %+v", gateway.created[0])
	}
	if refresher.refreshCalls != 1 {
		t.Fatalf("expected one refresh, got %d", refresher.refreshCalls)
	}
}

func TestSubmitSingleValidation(t *testing.T) {
	gateway := &mockBookingGateway{failAfter: -1}
	uc := NewCheckout(gateway, &mockRefresher{})

	if err := uc.SubmitSingle(context.Background(), "", "Cardamom Mocha", 180); !infra.IsValidation(err) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if err := uc.SubmitSingle(context.Background(), "Ravi", "", 0); !infra.IsValidation(err) {
		t.Fatalf("expected validation error for missing drink, got %v", err)
	}
	if len(gateway.created) != 0 {
		t.Fatalf("expected no requests, got %d", len(gateway.created))
	}
}
