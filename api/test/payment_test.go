package test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	mock "github.com/stripe/stripe-mock/param"
)

// mockStripe stands in for the stripe API: it verifies the confirmed
// payment intent against the total the test expects and answers with a
// succeeded intent.
type mockStripe struct {
	mu            sync.Mutex
	expectedTotal int
	charges       int
}

func (m *mockStripe) expect(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expectedTotal = total
}

func (m *mockStripe) charged() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.charges
}

func (m *mockStripe) handle() http.Handler {
	intents := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, err := mock.ParseParams(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		raw, ok := params["amount"].(string)
		if !ok {
			http.Error(w, "missing amount", http.StatusBadRequest)
			return
		}
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		expected := int64(m.expectedTotal) * 100
		m.mu.Unlock()

		if amount != expected {
			http.Error(w, fmt.Sprintf("amount %d != expected %d", amount, expected), http.StatusBadRequest)
			return
		}

		if params["payment_method"] == nil {
			http.Error(w, "missing payment_method", http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		m.charges++
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     fmt.Sprintf("pi_%d", rand.Intn(100000)),
			"status": "succeeded",
			"amount": amount,
		})
	})

	r := mux.NewRouter()
	r.Handle("/v1/payment_intents", intents).Methods("POST")
	return r
}

// mockPaypal answers the token and capture calls the paypal processor
// performs.
type mockPaypal struct {
	mu       sync.Mutex
	captures int
}

func (m *mockPaypal) captured() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captures
}

func (m *mockPaypal) handle() http.Handler {
	token := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.captures++
		m.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     mux.Vars(r)["id"],
			"status": "COMPLETED",
		})
	})

	r := mux.NewRouter()
	r.Handle("/v1/oauth2/token", token).Methods("POST")
	r.Handle("/v2/checkout/orders/{id}/capture", capture).Methods("POST")
	return r
}
