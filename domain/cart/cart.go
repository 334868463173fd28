package cart

import (
	"github.com/kaapihouse/kaapi/domain/menu"
)

// Line pairs a catalog item with the quantity currently selected.
// A line is only ever stored with Qty > 0.
type Line struct {
	Item menu.Item
	Qty  int
}

// Cart is the session-scoped item selection. It is owned by a single session
// and keyed by item id, one line per item. Iteration order over lines is
// insertion order so that checkout submits requests deterministically.
type Cart struct {
	catalog menu.Catalog
	lines   map[string]*Line
	order   []string
}

type Totals struct {
	Items int
	Price int64
}

func New(catalog menu.Catalog) *Cart {
	return &Cart{
		catalog: catalog,
		lines:   make(map[string]*Line),
	}
}

// ChangeQuantity applies a signed delta to the line for itemID. An unknown
// item id is silently ignored. A delta that would create a line with a
// non-positive quantity is a no-op, and a delta that takes an existing line
// to zero or below removes the line entirely.
func (c *Cart) ChangeQuantity(itemID string, delta int) {
	item, ok := c.catalog.Find(itemID)
	if !ok {
		return
	}

	line, exists := c.lines[itemID]
	if !exists {
		if delta <= 0 {
			return
		}
		line = &Line{Item: item}
		c.lines[itemID] = line
		c.order = append(c.order, itemID)
	}

	line.Qty += delta
	if line.Qty <= 0 {
		c.remove(itemID)
	}
}

func (c *Cart) remove(itemID string) {
	delete(c.lines, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = make(map[string]*Line)
	c.order = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// Totals is derived from the current lines on every call, never cached.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, line := range c.lines {
		t.Items += line.Qty
		t.Price += line.Item.Price * int64(line.Qty)
	}
	return t
}
