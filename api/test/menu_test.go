package test

import (
	"fmt"
	"math/rand"
	"net/http"
	"testing"

	"github.com/irsalhamdi/restaurant-orders/core/category"
	"github.com/irsalhamdi/restaurant-orders/core/item"
)

func (env *TestEnv) createCategoryOK(t *testing.T) category.Category {
	t.Helper()

	in := map[string]string{"name": fmt.Sprintf("Category %d", rand.Intn(1000000))}
	var out category.Category
	if code := env.do(t, http.MethodPost, env.Admin.URL+"/categories/create", in, &out); code != http.StatusCreated {
		t.Fatalf("creating category: status %d", code)
	}
	return out
}

func (env *TestEnv) createItemOK(t *testing.T, categoryID string, price int) item.Item {
	t.Helper()

	in := map[string]any{
		"categoryId":  categoryID,
		"name":        fmt.Sprintf("Dish %d", rand.Intn(1000000)),
		"description": "freshly made",
		"price":       price,
	}
	var out item.Item
	if code := env.do(t, http.MethodPost, env.Admin.URL+"/items/create", in, &out); code != http.StatusCreated {
		t.Fatalf("creating item: status %d", code)
	}
	return out
}

func TestMenuManagement(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	defer env.Logout(t, env.Admin.URL, "/logout")

	cat := env.createCategoryOK(t)
	it1 := env.createItemOK(t, cat.ID, 12)
	it2 := env.createItemOK(t, cat.ID, 8)

	// The customer menu carries the new category with both items.
	var menu []category.Category
	if code := env.do(t, http.MethodGet, env.Customer.URL+"/categories", nil, &menu); code != http.StatusOK {
		t.Fatalf("listing menu: status %d", code)
	}
	found := false
	for _, c := range menu {
		if c.ID == cat.ID {
			found = true
			if len(c.Items) != 2 {
				t.Fatalf("expected 2 items in category, got %d", len(c.Items))
			}
		}
	}
	if !found {
		t.Fatalf("created category missing from menu")
	}

	// Edit changes only the fields it names.
	newPrice := 15
	var edited item.Item
	in := map[string]any{"price": newPrice}
	if code := env.do(t, http.MethodPost, env.Admin.URL+"/items/"+it1.ID+"/edit", in, &edited); code != http.StatusOK {
		t.Fatalf("editing item: status %d", code)
	}
	if edited.Price != newPrice || edited.Name != it1.Name {
		t.Fatalf("unexpected edit result: %+v", edited)
	}

	// Search finds it by name on the customer gateway.
	var results []item.Item
	if code := env.do(t, http.MethodGet, env.Customer.URL+"/search?q="+it2.Name[:4], nil, &results); code != http.StatusOK {
		t.Fatalf("searching items: status %d", code)
	}
	if len(results) == 0 {
		t.Fatal("search returned no results")
	}

	// Deleting the category removes its items with it.
	r, err := http.NewRequest(http.MethodDelete, env.Admin.URL+"/categories/"+cat.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusNoContent {
		t.Fatalf("deleting category: status %d", w.StatusCode)
	}

	var count int
	if err := env.DB.Get(&count, "SELECT COUNT(*) FROM items WHERE category_id = $1", cat.ID); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected cascading delete to remove items, %d left", count)
	}
}

func TestItemDeleteUnknownID(t *testing.T) {
	env := NewTestEnv(t)

	env.Login(t, env.Admin.URL, "/auth", adminEmail, adminPass)
	defer env.Logout(t, env.Admin.URL, "/logout")

	r, err := http.NewRequest(http.MethodDelete, env.Admin.URL+"/items/2b8df1ef-95f6-4b55-a1b3-3c1e3c9be333", nil)
	if err != nil {
		t.Fatal(err)
	}
	w, err := env.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	w.Body.Close()
	if w.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", w.StatusCode)
	}
}
