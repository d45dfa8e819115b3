package item

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO items (item_id, category_id, name, description, price, image_url, created_at, updated_at)
	VALUES (:item_id, :category_id, :name, :description, :price, :image_url, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db *sqlx.DB, id string) (Item, error) {
	const q = `SELECT * FROM items WHERE item_id = $1`

	var it Item
	if err := db.GetContext(ctx, &it, q, id); err != nil {
		return Item{}, err
	}
	return it, nil
}

func FetchAll(ctx context.Context, db *sqlx.DB) ([]Item, error) {
	const q = `SELECT * FROM items ORDER BY name`

	its := []Item{}
	if err := db.SelectContext(ctx, &its, q); err != nil {
		return nil, fmt.Errorf("selecting items: %w", err)
	}
	return its, nil
}

func FetchByCategory(ctx context.Context, db *sqlx.DB, categoryID string) ([]Item, error) {
	const q = `SELECT * FROM items WHERE category_id = $1 ORDER BY name`

	its := []Item{}
	if err := db.SelectContext(ctx, &its, q, categoryID); err != nil {
		return nil, fmt.Errorf("selecting items of category[%s]: %w", categoryID, err)
	}
	return its, nil
}

// Search matches item names and descriptions case-insensitively.
func Search(ctx context.Context, db *sqlx.DB, term string) ([]Item, error) {
	const q = `
	SELECT * FROM items
	WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
	ORDER BY name`

	its := []Item{}
	if err := db.SelectContext(ctx, &its, q, term); err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	return its, nil
}

func Update(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	UPDATE items SET
		category_id = :category_id,
		name = :name,
		description = :description,
		price = :price,
		image_url = :image_url,
		updated_at = :updated_at
	WHERE item_id = :item_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("updating item[%s]: %w", it.ID, err)
	}
	return nil
}

// Delete removes a single item. Likes referencing it must be removed in
// the same transaction first; the caller owns that transaction.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM items WHERE item_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting item[%s]: %w", id, err)
	}
	return nil
}

// DeleteByCategory removes all items of a category, as part of the
// category's cascading delete transaction.
func DeleteByCategory(ctx context.Context, db sqlx.ExtContext, categoryID string) error {
	const q = `DELETE FROM items WHERE category_id = $1`

	if _, err := db.ExecContext(ctx, q, categoryID); err != nil {
		return fmt.Errorf("deleting items of category[%s]: %w", categoryID, err)
	}
	return nil
}
