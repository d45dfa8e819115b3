package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/irsalhamdi/restaurant-orders/api/web"
	"github.com/irsalhamdi/restaurant-orders/api/weberr"
	"github.com/irsalhamdi/restaurant-orders/core/cart"
	"github.com/irsalhamdi/restaurant-orders/core/claims"
	"github.com/irsalhamdi/restaurant-orders/core/item"
	"github.com/irsalhamdi/restaurant-orders/database"
	"github.com/irsalhamdi/restaurant-orders/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// HandleCheckout turns the cookie cart into a completed order. Prices
// are re-read from the store so the snapshot reflects the menu at
// checkout time, the external charge runs once before anything is
// written, and order plus items land in a single transaction. On success
// the cart cookie is cleared.
func HandleCheckout(db *sqlx.DB, procs map[string]Processor, log logrus.FieldLogger) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in CheckoutNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		c := cart.FromRequest(r, log)
		if c.Empty() {
			err := errors.New("checkout requested with an empty cart")
			return weberr.NewError(err, "Cart is empty.", http.StatusBadRequest)
		}

		now := time.Now().UTC()
		ord := Order{
			ID:           validate.GenerateID(),
			UserID:       clm.UserID,
			CustomerName: in.CustomerName,
			Status:       Completed,
			Provider:     in.Provider,
			CreatedAt:    now,
		}

		for _, line := range c.Items {
			it, err := item.Fetch(ctx, db, line.ItemID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					msg := fmt.Sprintf("item %q is no longer available", line.Name)
					return weberr.NewError(err, msg, http.StatusBadRequest)
				}
				return fmt.Errorf("fetching item[%s]: %w", line.ItemID, err)
			}

			ord.Items = append(ord.Items, Item{
				OrderID:  ord.ID,
				ItemID:   it.ID,
				Name:     it.Name,
				Price:    it.Price,
				Quantity: line.Quantity,
			})
			ord.Total += it.Price * line.Quantity
		}

		if in.Provider != "" {
			proc, ok := procs[in.Provider]
			if !ok {
				err := fmt.Errorf("unsupported payment provider %q", in.Provider)
				return weberr.NewError(err, err.Error(), http.StatusBadRequest)
			}

			ref, err := proc.Charge(ctx, Charge{
				Amount:      ord.Total,
				Description: fmt.Sprintf("order %s for %s", ord.ID, in.CustomerName),
				MethodRef:   in.MethodRef,
			})
			if err != nil {
				return fmt.Errorf("charging %d via %q: %w", ord.Total, in.Provider, err)
			}
			ord.ProviderRef = ref
		}

		err = database.Transaction(db, func(tx sqlx.ExtContext) error {
			if err := Create(ctx, tx, ord); err != nil {
				return err
			}
			for _, it := range ord.Items {
				if err := CreateItem(ctx, tx, it); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("creating order[%s] for user[%s]: %w", ord.ID, clm.UserID, err)
		}

		cart.ClearCookie(w)

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}

func HandleListOwn(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		ords, err := FetchByUser(ctx, db, clm.UserID)
		if err != nil {
			return err
		}

		for i := range ords {
			its, err := FetchItems(ctx, db, ords[i].ID)
			if err != nil {
				return err
			}
			ords[i].Items = its
		}

		return web.Respond(ctx, w, ords, http.StatusOK)
	}
}

// HandleListAll serves the admin order overview.
func HandleListAll(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ords, err := FetchAll(ctx, db)
		if err != nil {
			return err
		}

		for i := range ords {
			its, err := FetchItems(ctx, db, ords[i].ID)
			if err != nil {
				return err
			}
			ords[i].Items = its
		}

		return web.Respond(ctx, w, ords, http.StatusOK)
	}
}
