package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/item"
	"github.com/irsalhamdi/restaurant-orders/core/like"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
)

// HandleList returns every category with its items, the shape the menu
// page renders directly.
func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		cs, err := FetchAll(ctx, db)
		if err != nil {
			return err
		}

		for i := range cs {
			its, err := item.FetchByCategory(ctx, db, cs[i].ID)
			if err != nil {
				return err
			}
			cs[i].Items = its
		}

		return web.Respond(ctx, w, cs, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in CategoryNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		c := Category{
			ID:        validate.GenerateID(),
			Name:      in.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := Create(ctx, db, c); err != nil {
			return err
		}

		return web.Respond(ctx, w, c, http.StatusCreated)
	}
}

// HandleDelete removes a category, its items and their likes in one
// transaction so a mid-sequence failure cannot orphan rows.
func HandleDelete(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		if _, err := Fetch(ctx, db, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching category[%s]: %w", id, err)
		}

		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := like.DeleteByCategory(ctx, tx, id); err != nil {
				return err
			}
			if err := item.DeleteByCategory(ctx, tx, id); err != nil {
				return err
			}
			return Delete(ctx, tx, id)
		})
		if err != nil {
			return fmt.Errorf("deleting category[%s] with its items: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
