package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/like"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
)

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		its, err := FetchAll(ctx, db)
		if err != nil {
			return err
		}
		return web.Respond(ctx, w, its, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		it, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, it, http.StatusOK)
	}
}

func HandleSearch(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		term := r.URL.Query().Get("q")
		if term == "" {
			err := errors.New("missing search term")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		its, err := Search(ctx, db, term)
		if err != nil {
			return err
		}
		return web.Respond(ctx, w, its, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		now := time.Now().UTC()
		it := Item{
			ID:          validate.GenerateID(),
			CategoryID:  in.CategoryID,
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    in.ImageURL,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := Create(ctx, db, it); err != nil {
			return err
		}

		return web.Respond(ctx, w, it, http.StatusCreated)
	}
}

func HandleEdit(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		var up ItemUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		it, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching item[%s]: %w", id, err)
		}

		if up.CategoryID != nil {
			it.CategoryID = *up.CategoryID
		}
		if up.Name != nil {
			it.Name = *up.Name
		}
		if up.Description != nil {
			it.Description = *up.Description
		}
		if up.Price != nil {
			it.Price = *up.Price
		}
		if up.ImageURL != nil {
			it.ImageURL = *up.ImageURL
		}
		it.UpdatedAt = time.Now().UTC()

		if err := Update(ctx, db, it); err != nil {
			return err
		}

		return web.Respond(ctx, w, it, http.StatusOK)
	}
}

// HandleDelete removes an item together with the likes referencing it,
// atomically: a failure on either statement leaves both tables untouched.
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
			return fmt.Errorf("fetching item[%s]: %w", id, err)
		}

		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := like.DeleteByItem(ctx, tx, id); err != nil {
				return err
			}
			return Delete(ctx, tx, id)
		})
		if err != nil {
			return fmt.Errorf("deleting item[%s] with its likes: %w", id, err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
