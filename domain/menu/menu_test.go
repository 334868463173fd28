package menu

import "testing"

func TestFind(t *testing.T) {
	catalog := Default()
	it, ok := catalog.Find("2")
	if !ok {
		t.Fatalf("expected item 2 to exist")
	}
	if it.Name != "Elaichi Cappuccino" || it.Price != 170 {
		t.Fatalf("unexpected item: %+v", it)
	}
	if _, ok := catalog.Find("99"); ok {
		t.Fatalf("expected item 99 to be missing")
	}
}

func TestByCategory(t *testing.T) {
	catalog := Default()
	if got := len(catalog.ByCategory(CategoryAll)); got != len(catalog) {
		t.Fatalf("expected all %d items, got %d", len(catalog), got)
	}
	cold := catalog.ByCategory("cold")
	if len(cold) != 2 {
		t.Fatalf("expected 2 cold items, got %d", len(cold))
	}
	for _, it := range cold {
		if it.Category != "cold" {
			t.Fatalf("unexpected category %q in cold items", it.Category)
		}
	}
	if got := catalog.ByCategory("espresso"); len(got) != 0 {
		t.Fatalf("expected no items for unknown category, got %d", len(got))
	}
}

func TestPriceByName(t *testing.T) {
	catalog := Default()
	if p := catalog.PriceByName("Masala Chai Latte"); p != 110 {
		t.Fatalf("expected price 110, got %d", p)
	}
	if p := catalog.PriceByName("Flat White"); p != 0 {
		t.Fatalf("expected 0 for unknown drink, got %d", p)
	}
}
