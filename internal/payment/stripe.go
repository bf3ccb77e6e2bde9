package payment

import (
	"context"
	"errors"
	"time"

	"github.com/kinopark/cinema-booking-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripePaymentProvider charges via Stripe PaymentIntents, confirming
// server-side against a configured payment method (the saved method of the
// cinema chain's merchant flow).
type StripePaymentProvider struct {
	paymentMethod string
}

func NewStripePaymentProvider(paymentMethod string) *StripePaymentProvider {
	return &StripePaymentProvider{
		paymentMethod: paymentMethod,
	}
}

func (s *StripePaymentProvider) Charge(
	ctx context.Context,
	req domain.PaymentRequest) (*domain.Payment, error) {

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(req.Currency),
		Description:   stripe.String(req.Description),
		Confirm:       stripe.Bool(true),
		PaymentMethod: stripe.String(s.paymentMethod),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.AddMetadata("reference", req.Reference)

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return nil, domain.ErrPaymentDeclined
		}

		return nil, err
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, domain.ErrPaymentDeclined
	}

	return &domain.Payment{
		Reference:   req.Reference,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      domain.PaymentStatusCompleted,
		CreatedAt:   time.Now(),
	}, nil
}
