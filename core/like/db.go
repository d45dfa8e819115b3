package like

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, l Like) error {
	const q = `
	INSERT INTO likes (user_id, item_id, created_at)
	VALUES (:user_id, :item_id, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, l); err != nil {
		return fmt.Errorf("inserting like: %w", err)
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, userID string, itemID string) error {
	const q = `DELETE FROM likes WHERE user_id = $1 AND item_id = $2`

	if _, err := db.ExecContext(ctx, q, userID, itemID); err != nil {
		return fmt.Errorf("deleting like: %w", err)
	}
	return nil
}

func Exists(ctx context.Context, db *sqlx.DB, userID string, itemID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND item_id = $2)`

	var found bool
	if err := db.GetContext(ctx, &found, q, userID, itemID); err != nil {
		return false, fmt.Errorf("checking like: %w", err)
	}
	return found, nil
}

func FetchByUser(ctx context.Context, db *sqlx.DB, userID string) ([]Like, error) {
	const q = `SELECT * FROM likes WHERE user_id = $1 ORDER BY created_at DESC`

	ls := []Like{}
	if err := db.SelectContext(ctx, &ls, q, userID); err != nil {
		return nil, fmt.Errorf("selecting likes of user[%s]: %w", userID, err)
	}
	return ls, nil
}

// DeleteByItem removes every like of an item, as part of the item's
// cascading delete transaction.
func DeleteByItem(ctx context.Context, db sqlx.ExtContext, itemID string) error {
	const q = `DELETE FROM likes WHERE item_id = $1`

	if _, err := db.ExecContext(ctx, q, itemID); err != nil {
		return fmt.Errorf("deleting likes of item[%s]: %w", itemID, err)
	}
	return nil
}

// DeleteByCategory removes likes of every item in a category, ahead of
// the items themselves in the category delete transaction.
func DeleteByCategory(ctx context.Context, db sqlx.ExtContext, categoryID string) error {
	const q = `
	DELETE FROM likes WHERE item_id IN
		(SELECT item_id FROM items WHERE category_id = $1)`

	if _, err := db.ExecContext(ctx, q, categoryID); err != nil {
		return fmt.Errorf("deleting likes of category[%s]: %w", categoryID, err)
	}
	return nil
}
