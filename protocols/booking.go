package protocols

import (
	"context"
	"time"
)

// Booking is a persisted order record as returned by the booking service.
// The client only ever creates bookings and reads the full set back.
type Booking struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	DrinkName    string    `json:"drink_name"`
	Price        float64   `json:"price"`
	Time         time.Time `json:"time"`
}

// CreateBookingInput is the canonical order-creation payload. Price is the
// line price already multiplied by quantity; the booking service has no
// notion of quantity.
type CreateBookingInput struct {
	CustomerName string
	DrinkName    string
	Price        float64
}

type BookingGateway interface {
	List(ctx context.Context) ([]Booking, error)
	Create(ctx context.Context, input CreateBookingInput) (*Booking, error)
}

// Refresher re-fetches the cached booking list. Checkout triggers it after a
// fully successful submission.
type Refresher interface {
	Refresh(ctx context.Context) error
}
