package menu

// Item is a single purchasable menu entry. Items are fixed at startup and
// never mutated; the cart holds them by value.
type Item struct {
	ID       string
	Name     string
	Category string
	Price    int64
	ImageURL string
}

type Catalog []Item

const CategoryAll = "all"

func Default() Catalog {
	return Catalog{
		{ID: "1", Name: "Madras Filter Coffee", Category: "filter-coffee", Price: 120, ImageURL: "https://images.unsplash.com/photo-1706037463363-d8494ee690f6?auto=format&fit=crop&q=60&w=1000"},
		{ID: "2", Name: "Elaichi Cappuccino", Category: "masala", Price: 170, ImageURL: "https://images.unsplash.com/photo-1511920170033-f8396924c348?q=80"},
		{ID: "3", Name: "Turmeric Latte (Haldi Doodh)", Category: "masala", Price: 150, ImageURL: "https://images.unsplash.com/photo-1541167760496-1628856ab772?q=80"},
		{ID: "4", Name: "Kapi Cold Brew (South Indian)", Category: "cold", Price: 190, ImageURL: "https://images.unsplash.com/photo-1667064371242-19c2e7b9cb63?auto=format&fit=crop&q=60&w=1000"},
		{ID: "5", Name: "Cardamom Mocha", Category: "masala", Price: 180, ImageURL: "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?q=80"},
		{ID: "6", Name: "Masala Chai Latte", Category: "masala", Price: 110, ImageURL: "https://images.unsplash.com/photo-1648192312898-838f9b322f47?auto=format&fit=crop&q=60&w=1000"},
		{ID: "7", Name: "Paneer Tandoori Burger", Category: "fusion", Price: 220, ImageURL: "https://images.unsplash.com/photo-1613160775054-d4a634592b7f?auto=format&fit=crop&q=60&w=1000"},
		{ID: "8", Name: "Spiced Aloo Tikki", Category: "fusion", Price: 130, ImageURL: "https://media.istockphoto.com/id/1204867131/photo/aloo-tikki.webp"},
		{ID: "9", Name: "Masala Cold Brew (Chai Twist)", Category: "cold", Price: 200, ImageURL: "https://images.unsplash.com/photo-1586003837615-044e696ab8e8?auto=format&fit=crop&q=60&w=1000"},
	}
}

func (c Catalog) Find(id string) (Item, bool) {
	for _, it := range c {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ByCategory returns the items in the given category. The "all" category
// returns the catalog unchanged.
func (c Catalog) ByCategory(category string) Catalog {
	if category == CategoryAll {
		return c
	}
	var out Catalog
	for _, it := range c {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

// PriceByName resolves the price for the manual booking form, which selects
// drinks by display name. Unknown names price at zero.
func (c Catalog) PriceByName(name string) int64 {
	for _, it := range c {
		if it.Name == name {
			return it.Price
		}
	}
	return 0
}
