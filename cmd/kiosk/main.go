package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kaapihouse/kaapi/config"
	"github.com/kaapihouse/kaapi/domain/cart"
	"github.com/kaapihouse/kaapi/domain/menu"
	"github.com/kaapihouse/kaapi/infra"
	"github.com/kaapihouse/kaapi/infra/gateways"
	"github.com/kaapihouse/kaapi/infra/tracing"
	protocols "github.com/kaapihouse/kaapi/protocols"
	"github.com/kaapihouse/kaapi/use_cases/checkout"
	"github.com/kaapihouse/kaapi/use_cases/feed"
)

// session owns all client state: one catalog, one cart, one booking feed.
// Nothing here is process-global, so independent sessions could run side by
// side (tests do exactly that).
type session struct {
	catalog  menu.Catalog
	cart     *cart.Cart
	feed     *feed.Feed
	checkout *checkout.Checkout
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if shutdown := tracing.Init("kiosk"); shutdown != nil {
		defer shutdown()
	}

	catalog := menu.Default()
	gateway := gateways.NewBookingGatewayHttp(cfg.Client.BaseURL, &http.Client{Timeout: 10 * time.Second})
	bookingFeed := feed.New(gateway)
	s := &session{
		catalog:  catalog,
		cart:     cart.New(catalog),
		feed:     bookingFeed,
		checkout: checkout.NewCheckout(gateway, bookingFeed),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Initial load plus the background refresh loop for the session lifetime.
	_ = s.feed.Refresh(ctx)
	go feed.NewPoller(s.feed, cfg.Client.RefreshInterval).Run(ctx)

	fmt.Println("Kaapi Corner kiosk. Type 'help' for commands.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		s.handle(ctx, line)
	}
}

func (s *session) handle(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Println(`commands:
  menu [category]          show the menu (categories: all, filter-coffee, masala, cold, fusion)
  add <id>                 add one of an item to the cart
  remove <id>              remove one of an item from the cart
  cart                     show the cart
  clear                    empty the cart
  checkout <name>          submit the cart as bookings for <name>
  book <name> <drink...>   book a single drink by name without the cart
  bookings                 show the booking list (filtered view)
  filter <text> [from] [to]  filter bookings (dates as 2006-01-02)
  clearfilter              drop all booking filters
  quit`)
	case "menu":
		category := menu.CategoryAll
		if len(args) > 0 {
			category = args[0]
		}
		s.renderMenu(category)
	case "add":
		if len(args) != 1 {
			fmt.Println("usage: add <id>")
			return
		}
		s.cart.ChangeQuantity(args[0], 1)
		s.renderCartSummary()
	case "remove":
		if len(args) != 1 {
			fmt.Println("usage: remove <id>")
			return
		}
		s.cart.ChangeQuantity(args[0], -1)
		s.renderCartSummary()
	case "cart":
		s.renderCart()
	case "clear":
		s.cart.Clear()
		fmt.Println("cart cleared")
	case "checkout":
		if len(args) == 0 {
			fmt.Println("usage: checkout <name>")
			return
		}
		name := strings.Join(args, " ")
		if err := s.checkout.Checkout(ctx, s.cart, name); err != nil {
			reportError(err)
			return
		}
		fmt.Println("Order saved!")
	case "book":
		if len(args) < 2 {
			fmt.Println("usage: book <name> <drink...>")
			return
		}
		name := args[0]
		drink := strings.Join(args[1:], " ")
		// Off-menu drinks are accepted and priced at zero, like the manual
		// booking form.
		price := s.catalog.PriceByName(drink)
		if err := s.checkout.SubmitSingle(ctx, name, drink, float64(price)); err != nil {
			reportError(err)
			return
		}
		fmt.Println("Booking added!")
	case "bookings":
		s.renderBookings(s.feed.Filtered())
	case "filter":
		if len(args) == 0 {
			fmt.Println("usage: filter <text> [from] [to]")
			return
		}
		criteria, err := parseCriteria(args)
		if err != nil {
			fmt.Println(err)
			return
		}
		s.feed.SetCriteria(criteria)
		s.renderBookings(s.feed.Filtered())
	case "clearfilter":
		s.feed.ClearFilter()
		s.renderBookings(s.feed.Filtered())
	default:
		fmt.Printf("unknown command %q, try 'help'\n", cmd)
	}
}

// parseCriteria reads "<text> [from] [to]"; a "-" text means date-only
// filtering.
func parseCriteria(args []string) (feed.Criteria, error) {
	var c feed.Criteria
	if args[0] != "-" {
		c.Text = args[0]
	}
	if len(args) > 1 {
		from, err := time.ParseInLocation("2006-01-02", args[1], time.Local)
		if err != nil {
			return c, fmt.Errorf("bad from date %q, want 2006-01-02", args[1])
		}
		c.From = &from
	}
	if len(args) > 2 {
		to, err := time.ParseInLocation("2006-01-02", args[2], time.Local)
		if err != nil {
			return c, fmt.Errorf("bad to date %q, want 2006-01-02", args[2])
		}
		c.To = &to
	}
	return c, nil
}

func reportError(err error) {
	if infra.IsValidation(err) {
		fmt.Printf("!! %v\n", err)
		return
	}
	fmt.Printf("!! request failed: %v\n", err)
}

func (s *session) renderMenu(category string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tCATEGORY\tPRICE")
	for _, it := range s.catalog.ByCategory(category) {
		fmt.Fprintf(w, "%s\t%s\t%s\t₹%d\n", it.ID, it.Name, it.Category, it.Price)
	}
	w.Flush()
}

func (s *session) renderCartSummary() {
	t := s.cart.Totals()
	fmt.Printf("cart: %d items, ₹%d\n", t.Items, t.Price)
}

func (s *session) renderCart() {
	if s.cart.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, line := range s.cart.Lines() {
		fmt.Fprintf(w, "%s\t₹%d x %d\t= ₹%d\n", line.Item.Name, line.Item.Price, line.Qty, line.Item.Price*int64(line.Qty))
	}
	w.Flush()
	s.renderCartSummary()
}

func (s *session) renderBookings(bookings []protocols.Booking) {
	if len(bookings) == 0 {
		fmt.Println("No bookings yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CUSTOMER\tDRINK\tPRICE\tTIME")
	for _, b := range bookings {
		fmt.Fprintf(w, "%s\t%s\t₹%.0f\t%s\n", b.CustomerName, b.DrinkName, b.Price, b.Time.Local().Format("02 Jan 2006 15:04"))
	}
	w.Flush()
}
