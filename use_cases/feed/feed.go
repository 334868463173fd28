package feed

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	protocols "github.com/kaapihouse/kaapi/protocols"
)

// Feed holds the most recent full snapshot of bookings and derives filtered
// views from it without re-fetching. The snapshot is replaced wholesale on
// each refresh; a failed refresh keeps the previous snapshot so the display
// degrades to stale-but-available. Concurrent refreshes are last-response-wins
// with no sequencing token.
type Feed struct {
	bookingGateway protocols.BookingGateway

	mu       sync.RWMutex
	bookings []protocols.Booking
	criteria Criteria
}

// Criteria filters the cached bookings. All present fields are ANDed; absent
// fields pass everything. From and To carry date-valued times interpreted as
// start-of-day and end-of-day in their own location.
type Criteria struct {
	Text string
	From *time.Time
	To   *time.Time
}

func New(bookingGateway protocols.BookingGateway) *Feed {
	return &Feed{bookingGateway: bookingGateway}
}

// Refresh replaces the snapshot with the current server state. On failure
// the error is logged and returned, and the old snapshot stays in place.
func (f *Feed) Refresh(ctx context.Context) error {
	bookings, err := f.bookingGateway.List(ctx)
	if err != nil {
		log.Printf("booking refresh failed: %v", err)
		return err
	}

	f.mu.Lock()
	f.bookings = bookings
	f.mu.Unlock()
	return nil
}

func (f *Feed) SetCriteria(c Criteria) {
	f.mu.Lock()
	f.criteria = c
	f.mu.Unlock()
}

func (f *Feed) ClearFilter() {
	f.SetCriteria(Criteria{})
}

// Bookings returns a copy of the unfiltered snapshot in server order.
func (f *Feed) Bookings() []protocols.Booking {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]protocols.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out
}

// Filtered applies the current criteria to the snapshot, evaluated fresh on
// every call.
func (f *Feed) Filtered() []protocols.Booking {
	f.mu.RLock()
	bookings := f.bookings
	criteria := f.criteria
	f.mu.RUnlock()
	return Apply(bookings, criteria)
}

// Apply filters bookings by the given criteria, preserving input order. The
// text criterion matches case-insensitively against customer name or drink
// name; the date criteria bound the booking timestamp to
// [start-of-day(From), 23:59:59.999 of To].
func Apply(bookings []protocols.Booking, c Criteria) []protocols.Booking {
	text := strings.ToLower(strings.TrimSpace(c.Text))

	out := make([]protocols.Booking, 0, len(bookings))
	for _, b := range bookings {
		if text != "" &&
			!strings.Contains(strings.ToLower(b.CustomerName), text) &&
			!strings.Contains(strings.ToLower(b.DrinkName), text) {
			continue
		}
		if c.From != nil && b.Time.Before(startOfDay(*c.From)) {
			continue
		}
		if c.To != nil && b.Time.After(endOfDay(*c.To)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
