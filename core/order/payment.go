package order

import (
	"context"
	"fmt"

	"github.com/plutov/paypal/v4"
	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
)

// Charge is one best-effort payment attempt. No retries: a failure is
// surfaced to the caller and no order is created.
type Charge struct {
	Amount      int
	Description string

	// MethodRef identifies the client-side payment artifact: a stripe
	// payment method id or an approved paypal order id.
	MethodRef string
}

type Processor interface {
	Charge(ctx context.Context, c Charge) (ref string, err error)
}

// StripeProcessor confirms a payment intent against a payment method the
// browser obtained from stripe.js.
type StripeProcessor struct {
	API *stripecl.API
}

func (p StripeProcessor) Charge(ctx context.Context, c Charge) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(c.Amount) * 100),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		Description:   stripe.String(c.Description),
		PaymentMethod: stripe.String(c.MethodRef),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	intent, err := p.API.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("creating payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("payment intent[%s] finished with status %q", intent.ID, intent.Status)
	}

	return intent.ID, nil
}

// PaypalProcessor captures an order the paypal browser SDK already
// created and the buyer already approved.
type PaypalProcessor struct {
	Client *paypal.Client
}

func (p PaypalProcessor) Charge(ctx context.Context, c Charge) (string, error) {
	resp, err := p.Client.CaptureOrder(ctx, c.MethodRef, paypal.CaptureOrderRequest{})
	if err != nil {
		return "", fmt.Errorf("capturing paypal order[%s]: %w", c.MethodRef, err)
	}

	if resp.Status != "COMPLETED" {
		return "", fmt.Errorf("captured paypal order[%s] with status %q", c.MethodRef, resp.Status)
	}

	return resp.ID, nil
}
