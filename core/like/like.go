package like

import "time"

// Like marks an item as a favourite of a user. One row per (user, item).
type Like struct {
	UserID    string    `json:"-" db:"user_id"`
	ItemID    string    `json:"itemId" db:"item_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
