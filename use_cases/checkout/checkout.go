package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/kaapihouse/kaapi/domain/cart"
	"github.com/kaapihouse/kaapi/infra"
	protocols "github.com/kaapihouse/kaapi/protocols"
)

func NewCheckout(bookingGateway protocols.BookingGateway, refresher protocols.Refresher) *Checkout {
	return &Checkout{
		bookingGateway: bookingGateway,
		refresher:      refresher,
	}
}

type Checkout struct {
	bookingGateway protocols.BookingGateway
	refresher      protocols.Refresher
}

// Checkout drains the cart into one create request per line, each awaited
// before the next starts. The price on each request is the line price
// multiplied by quantity. A failing request aborts the remaining lines and
// surfaces a single aggregate error; lines already submitted are not rolled
// back. Only a fully successful run clears the cart and triggers a refresh.
func (c *Checkout) Checkout(ctx context.Context, crt *cart.Cart, customerName string) error {
	if crt.IsEmpty() {
		return infra.NewValidationError("cart is empty")
	}
	name := strings.TrimSpace(customerName)
	if name == "" {
		return infra.NewValidationError("customer name is required")
	}

	lines := crt.Lines()
	for i, line := range lines {
		input := protocols.CreateBookingInput{
			CustomerName: name,
			DrinkName:    line.Item.Name,
			Price:        float64(line.Item.Price * int64(line.Qty)),
		}
		if _, err := c.bookingGateway.Create(ctx, input); err != nil {
			return fmt.Errorf("checkout failed after %d of %d orders: %w", i, len(lines), err)
		}
	}

	crt.Clear()
	// A failed refresh is already logged by the feed; the checkout stands.
	_ = c.refresher.Refresh(ctx)
	return nil
}

// SubmitSingle handles the manual booking form: one drink, no cart involved.
func (c *Checkout) SubmitSingle(ctx context.Context, customerName, drinkName string, price float64) error {
	name := strings.TrimSpace(customerName)
	if name == "" || drinkName == "" {
		return infra.NewValidationError("customer name and drink are required")
	}

	if _, err := c.bookingGateway.Create(ctx, protocols.CreateBookingInput{
		CustomerName: name,
		DrinkName:    drinkName,
		Price:        price,
	}); err != nil {
		return err
	}

	_ = c.refresher.Refresh(ctx)
	return nil
}
