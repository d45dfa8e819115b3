package test

import (
	"net/http"
	"testing"
)

type cartView struct {
	Items []struct {
		ItemID   string `json:"itemId"`
		Name     string `json:"name"`
		Price    int    `json:"price"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Total int `json:"total"`
}

func TestCartAddMergeRemove(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	cat := env.createCategoryOK(t)
	it := env.createItemOK(t, cat.ID, 10)
	env.Logout(t, env.Admin.URL, "/logout")

	// Adding the same item twice merges into one line.
	add := map[string]any{"itemId": it.ID, "quantity": 1}

	var c cartView
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/cart", add, &c); code != http.StatusOK {
		t.Fatalf("adding to cart: status %d", code)
	}
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/cart", add, &c); code != http.StatusOK {
		t.Fatalf("adding to cart again: status %d", code)
	}

	if len(c.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 || c.Total != 20 {
		t.Fatalf("expected quantity 2 and total 20, got quantity %d total %d", c.Items[0].Quantity, c.Total)
	}

	// The cart survives in the cookie between requests.
	if code := env.do(t, http.MethodGet, env.Customer.URL+"/cart", nil, &c); code != http.StatusOK {
		t.Fatalf("showing cart: status %d", code)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("cart not persisted across requests: %+v", c)
	}

	// Decrement by one, then drop the line.
	if code := env.do(t, http.MethodDelete, env.Customer.URL+"/cart/items/"+it.ID+"?quantity=1", nil, &c); code != http.StatusOK {
		t.Fatalf("decrementing line: status %d", code)
	}
	if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 after decrement, got %+v", c)
	}

	if code := env.do(t, http.MethodDelete, env.Customer.URL+"/cart/items/"+it.ID, nil, &c); code != http.StatusOK {
		t.Fatalf("removing line: status %d", code)
	}
	if len(c.Items) != 0 || c.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}

func TestCartRejectsUnknownItem(t *testing.T) {
	env := NewTestEnv(t)

	add := map[string]any{"itemId": "2b8df1ef-95f6-4b55-a1b3-3c1e3c9be333", "quantity": 1}
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/cart", add, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", code)
	}

	add = map[string]any{"itemId": "not-a-uuid", "quantity": 1}
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/cart", add, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", code)
	}
}
