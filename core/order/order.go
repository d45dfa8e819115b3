package order

import "time"

type Status string

// Completed is the only modeled status: an order row exists only after
// its payment went through, and is immutable afterwards.
const Completed Status = "COMPLETED"

type Order struct {
	ID           string    `json:"id" db:"order_id"`
	UserID       string    `json:"userId" db:"user_id"`
	CustomerName string    `json:"customerName" db:"customer_name"`
	Total        int       `json:"total" db:"total"`
	Status       Status    `json:"status" db:"status"`
	Provider     string    `json:"provider" db:"provider"`
	ProviderRef  string    `json:"providerRef" db:"provider_ref"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	Items []Item `json:"items,omitempty" db:"-"`
}

// Item is a snapshot of one purchased line: name and price are copied at
// checkout time so later menu edits cannot rewrite past orders.
type Item struct {
	OrderID  string `json:"-" db:"order_id"`
	ItemID   string `json:"itemId" db:"item_id"`
	Name     string `json:"name" db:"name"`
	Price    int    `json:"price" db:"price"`
	Quantity int    `json:"quantity" db:"quantity"`
}

type CheckoutNew struct {
	CustomerName string `json:"customerName" validate:"required"`
	Provider     string `json:"provider" validate:"omitempty,oneof=card paypal"`
	MethodRef    string `json:"methodRef" validate:"required_with=Provider"`
}
