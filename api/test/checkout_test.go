package test

import (
	"net/http"
	"testing"

	"github.com/irsalhamdi/restaurant-orders/core/order"
)

func TestCheckoutCard(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	cat := env.createCategoryOK(t)
	it1 := env.createItemOK(t, cat.ID, 12)
	it2 := env.createItemOK(t, cat.ID, 8)
	env.Logout(t, env.Admin.URL, "/logout")

	env.Login(t, env.Customer.URL, "/auth/login", userEmail, userPass)
	defer env.Logout(t, env.Customer.URL, "/auth/logout")

	env.do(t, http.MethodPost, env.Customer.URL+"/cart", map[string]any{"itemId": it1.ID, "quantity": 2}, nil)
	env.do(t, http.MethodPost, env.Customer.URL+"/cart", map[string]any{"itemId": it2.ID, "quantity": 1}, nil)

	env.Stripe.expect(2*12 + 8)

	in := map[string]string{
		"customerName": "Ada Lovelace",
		"provider":     "card",
		"methodRef":    "pm_card_visa",
	}
	var ord order.Order
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/payment", in, &ord); code != http.StatusCreated {
		t.Fatalf("checkout: status %d", code)
	}

	if ord.Total != 32 {
		t.Fatalf("expected total 32, got %d", ord.Total)
	}
	if ord.Status != order.Completed {
		t.Fatalf("expected status COMPLETED, got %q", ord.Status)
	}
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 snapshot lines, got %d", len(ord.Items))
	}
	if env.Stripe.charged() != 1 {
		t.Fatalf("expected exactly one stripe charge, got %d", env.Stripe.charged())
	}

	// The order total must match the snapshot sum persisted with it.
	var sum int
	if err := env.DB.Get(&sum, "SELECT SUM(price * quantity) FROM order_items WHERE order_id = $1", ord.ID); err != nil {
		t.Fatal(err)
	}
	if sum != ord.Total {
		t.Fatalf("snapshot sum %d != order total %d", sum, ord.Total)
	}

	// Checkout cleared the cart cookie.
	var c cartView
	if code := env.do(t, http.MethodGet, env.Customer.URL+"/cart", nil, &c); code != http.StatusOK {
		t.Fatalf("showing cart: status %d", code)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %+v", c)
	}

	// The order shows up in the customer's history.
	var own []order.Order
	if code := env.do(t, http.MethodGet, env.Customer.URL+"/orders", nil, &own); code != http.StatusOK {
		t.Fatalf("listing own orders: status %d", code)
	}
	found := false
	for _, o := range own {
		if o.ID == ord.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created order missing from own order list")
	}

	// And in the admin overview.
	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	var all []order.Order
	if code := env.do(t, http.MethodGet, env.Admin.URL+"/orders", nil, &all); code != http.StatusOK {
		t.Fatalf("listing all orders: status %d", code)
	}
	found = false
	for _, o := range all {
		if o.ID == ord.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("created order missing from admin order list")
	}
}

func TestCheckoutPaypal(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	cat := env.createCategoryOK(t)
	it := env.createItemOK(t, cat.ID, 25)
	env.Logout(t, env.Admin.URL, "/logout")

	env.Login(t, env.Customer.URL, "/auth/login", userEmail, userPass)
	defer env.Logout(t, env.Customer.URL, "/auth/logout")

	env.do(t, http.MethodPost, env.Customer.URL+"/cart", map[string]any{"itemId": it.ID, "quantity": 1}, nil)

	in := map[string]string{
		"customerName": "Grace Hopper",
		"provider":     "paypal",
		"methodRef":    "PP-ORDER-42",
	}
	var ord order.Order
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/payment", in, &ord); code != http.StatusCreated {
		t.Fatalf("paypal checkout: status %d", code)
	}

	if ord.Total != 25 {
		t.Fatalf("expected total 25, got %d", ord.Total)
	}
	if env.Paypal.captured() != 1 {
		t.Fatalf("expected exactly one paypal capture, got %d", env.Paypal.captured())
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Customer.URL, "/auth/login", userEmail, userPass)
	defer env.Logout(t, env.Customer.URL, "/auth/logout")

	var before int
	if err := env.DB.Get(&before, "SELECT COUNT(*) FROM orders"); err != nil {
		t.Fatal(err)
	}

	in := map[string]string{"customerName": "Nobody"}
	var body struct {
		Error string `json:"error"`
	}
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/payment", in, &body); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart, got %d", code)
	}
	if body.Error != "Cart is empty." {
		t.Fatalf("expected error %q, got %q", "Cart is empty.", body.Error)
	}

	var after int
	if err := env.DB.Get(&after, "SELECT COUNT(*) FROM orders"); err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Fatalf("empty-cart checkout created an order: %d -> %d", before, after)
	}
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	env := NewTestEnv(t)

	in := map[string]string{"customerName": "Anonymous"}
	if code := env.do(t, http.MethodPost, env.Customer.URL+"/payment", in, nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous checkout, got %d", code)
	}
}
