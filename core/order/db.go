package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders (order_id, user_id, customer_name, total, status, provider, provider_ref, created_at)
	VALUES (:order_id, :user_id, :customer_name, :total, :status, :provider, :provider_ref, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, ord); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	return nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items (order_id, item_id, name, price, quantity)
	VALUES (:order_id, :item_id, :name, :price, :quantity)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting order item: %w", err)
	}
	return nil
}

func FetchByUser(ctx context.Context, db *sqlx.DB, userID string) ([]Order, error) {
	const q = `SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	ords := []Order{}
	if err := db.SelectContext(ctx, &ords, q, userID); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%s]: %w", userID, err)
	}
	return ords, nil
}

func FetchAll(ctx context.Context, db *sqlx.DB) ([]Order, error) {
	const q = `SELECT * FROM orders ORDER BY created_at DESC`

	ords := []Order{}
	if err := db.SelectContext(ctx, &ords, q); err != nil {
		return nil, fmt.Errorf("selecting orders: %w", err)
	}
	return ords, nil
}

func FetchItems(ctx context.Context, db *sqlx.DB, orderID string) ([]Item, error) {
	const q = `SELECT * FROM order_items WHERE order_id = $1 ORDER BY name`

	its := []Item{}
	if err := db.SelectContext(ctx, &its, q, orderID); err != nil {
		return nil, fmt.Errorf("selecting items of order[%s]: %w", orderID, err)
	}
	return its, nil
}
