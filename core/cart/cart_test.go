package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddMergesExistingLine(t *testing.T) {
	var c Cart

	line := Line{ItemID: "item-1", Name: "Margherita", Price: 10, Quantity: 1}
	c.Add(line)
	c.Add(line)

	if len(c.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
	if got := c.Total(); got != 20 {
		t.Fatalf("expected total 20, got %d", got)
	}
}

func TestAddNormalizesQuantity(t *testing.T) {
	var c Cart
	c.Add(Line{ItemID: "item-1", Name: "Cola", Price: 3, Quantity: 0})

	if c.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", c.Items[0].Quantity)
	}
}

func TestRemove(t *testing.T) {
	var c Cart
	c.Add(Line{ItemID: "item-1", Name: "Margherita", Price: 10, Quantity: 3})
	c.Add(Line{ItemID: "item-2", Name: "Cola", Price: 3, Quantity: 1})

	c.Remove("item-1", 1)
	if c.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2 after decrement, got %d", c.Items[0].Quantity)
	}

	c.Remove("item-1", 2)
	want := Cart{Items: []Line{{ItemID: "item-2", Name: "Cola", Price: 3, Quantity: 1}}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("cart mismatch after removing line (-want +got):\n%s", diff)
	}

	// No quantity means: drop the line outright.
	c.Remove("item-2", 0)
	if !c.Empty() {
		t.Fatalf("expected empty cart, got %+v", c)
	}

	// Removing from an empty cart is a no-op.
	c.Remove("item-2", 1)
	if !c.Empty() {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}
