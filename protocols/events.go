package protocols

import "context"

// EventPublisher announces created bookings to interested consumers. Publish
// failures must not affect the outcome of the request that created the
// booking.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *Booking) error
}
