package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/item"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type LineNew struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
}

type view struct {
	Items []Line `json:"items"`
	Total int    `json:"total"`
}

func HandleShow(log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		c := FromRequest(r, log)
		return web.Respond(ctx, w, view{Items: c.Items, Total: c.Total()}, http.StatusOK)
	}
}

// HandleAdd merges one line into the cookie cart. Name and price are
// looked up server-side so the cookie never decides what an item costs
// at checkout; the cookie copy only feeds the cart page.
func HandleAdd(db *sqlx.DB, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in LineNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		it, err := item.Fetch(ctx, db, in.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching item[%s]: %w", in.ItemID, err)
		}

		c := FromRequest(r, log)
		c.Add(Line{
			ItemID:   it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: in.Quantity,
		})
		WriteCookie(w, c)

		return web.Respond(ctx, w, view{Items: c.Items, Total: c.Total()}, http.StatusOK)
	}
}

// HandleRemoveItem decrements a line by the "quantity" query parameter,
// removing it entirely when the parameter is absent.
func HandleRemoveItem(log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		qty := 0
		if raw := r.URL.Query().Get("quantity"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				err := errors.New("quantity must be a positive number")
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}
			qty = n
		}

		c := FromRequest(r, log)
		c.Remove(id, qty)
		WriteCookie(w, c)

		return web.Respond(ctx, w, view{Items: c.Items, Total: c.Total()}, http.StatusOK)
	}
}
