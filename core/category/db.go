package category

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, c Category) error {
	const q = `
	INSERT INTO categories (category_id, name, created_at, updated_at)
	VALUES (:category_id, :name, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db *sqlx.DB, id string) (Category, error) {
	const q = `SELECT * FROM categories WHERE category_id = $1`

	var c Category
	if err := db.GetContext(ctx, &c, q, id); err != nil {
		return Category{}, err
	}
	return c, nil
}

func FetchAll(ctx context.Context, db *sqlx.DB) ([]Category, error) {
	const q = `SELECT * FROM categories ORDER BY name`

	cs := []Category{}
	if err := db.SelectContext(ctx, &cs, q); err != nil {
		return nil, fmt.Errorf("selecting categories: %w", err)
	}
	return cs, nil
}

// Delete removes a single category row. Items of the category and their
// likes must already be gone within the same transaction.
func Delete(ctx context.Context, db sqlx.ExtContext, id string) error {
	const q = `DELETE FROM categories WHERE category_id = $1`

	if _, err := db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deleting category[%s]: %w", id, err)
	}
	return nil
}
