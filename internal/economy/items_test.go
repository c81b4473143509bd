package economy

import "testing"

func TestItemName(t *testing.T) {
	tests := []struct {
		id     string
		amount int64
		want   string
	}{
		{id: ItemPadlock, amount: 1, want: "padlock"},
		{id: ItemPadlock, amount: 3, want: "padlocks"},
		{id: ItemWhiteGem, amount: 2, want: "white gems"},
		{id: "unknown_item", amount: 5, want: "unknown_item"},
	}
	for _, tc := range tests {
		if got := ItemName(tc.id, tc.amount); got != tc.want {
			t.Fatalf("ItemName(%q, %d) = %q, want %q", tc.id, tc.amount, got, tc.want)
		}
	}
}

func TestItemCatalogWorths(t *testing.T) {
	for id, item := range Items() {
		if item.ID != id {
			t.Fatalf("item %q has mismatched id %q", id, item.ID)
		}
		if item.Worth <= 0 {
			t.Fatalf("item %q has non-positive worth %d", id, item.Worth)
		}
	}
}
