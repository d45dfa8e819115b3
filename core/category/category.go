package category

import (
	"time"

	"github.com/irsalhamdi/restaurant-orders/core/item"
)

type Category struct {
	ID        string    `json:"id" db:"category_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Items []item.Item `json:"items,omitempty" db:"-"`
}

type CategoryNew struct {
	Name string `json:"name" validate:"required"`
}
