package user

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, db sqlx.ExtContext, u User) error {
	const q = `
	INSERT INTO users (user_id, email, name, password_hash, role, created_at, updated_at)
	VALUES (:user_id, :email, :name, :password_hash, :role, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, u); err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func Fetch(ctx context.Context, db *sqlx.DB, id string) (User, error) {
	const q = `SELECT * FROM users WHERE user_id = $1`

	var u User
	if err := db.GetContext(ctx, &u, q, id); err != nil {
		return User{}, err
	}
	return u, nil
}

func FetchByEmail(ctx context.Context, db *sqlx.DB, email string) (User, error) {
	const q = `SELECT * FROM users WHERE email = $1`

	var u User
	if err := db.GetContext(ctx, &u, q, email); err != nil {
		return User{}, err
	}
	return u, nil
}
