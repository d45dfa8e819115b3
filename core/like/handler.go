package like

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
)

// HandleToggle flips the like state of an item for the current user.
func HandleToggle(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		found, err := Exists(ctx, db, clm.UserID, itemID)
		if err != nil {
			return err
		}

		if found {
			if err := Delete(ctx, db, clm.UserID, itemID); err != nil {
				return err
			}
			return web.Respond(ctx, w, map[string]bool{"liked": false}, http.StatusOK)
		}

		l := Like{
			UserID:    clm.UserID,
			ItemID:    itemID,
			CreatedAt: time.Now().UTC(),
		}
		if err := Create(ctx, db, l); err != nil {
			return err
		}
		return web.Respond(ctx, w, map[string]bool{"liked": true}, http.StatusOK)
	}
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ls, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return err
		}
		return web.Respond(ctx, w, ls, http.StatusOK)
	}
}
