package item

import "time"

type Item struct {
	ID          string    `json:"id" db:"item_id"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type ItemNew struct {
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"required,gte=1,lte=1000000"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

type ItemUp struct {
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price" validate:"omitempty,gte=1,lte=1000000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}
