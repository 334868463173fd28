package repositories

import "testing"

func TestLegacyUpdateSet(t *testing.T) {
	set := legacyUpdateSet("Asha", "Elaichi Cappuccino")
	if len(set) != 2 {
		t.Fatalf("expected both fields in set, got %v", set)
	}

	set = legacyUpdateSet("", "Masala Chai Latte")
	if len(set) != 1 || set[0].Key != "coffeeType" {
		t.Fatalf("expected coffeeType only, got %v", set)
	}
}

func TestLegacyUpdateSetEmpty(t *testing.T) {
	if set := legacyUpdateSet("", ""); len(set) != 0 {
		t.Fatalf("expected empty set for blank update, got %v", set)
	}
}
