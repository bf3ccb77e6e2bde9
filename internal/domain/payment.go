package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusDeclined  PaymentStatus = "declined"
)

type Payment struct {
	Reference   string
	AmountCents int64
	Currency    string
	Status      PaymentStatus
	CreatedAt   time.Time
}

// Amount is the charged amount in major currency units.
func (p Payment) Amount() decimal.Decimal {
	return decimal.NewFromInt(p.AmountCents).Shift(-2)
}

type PaymentRequest struct {
	Reference   string
	AmountCents int64
	Currency    string
	Description string
}

// PaymentProvider charges the buyer for a reservation. A declined charge is
// reported as ErrPaymentDeclined; any other error means the outcome of the
// attempt is unknown and the reservation must be unwound all the same.
type PaymentProvider interface {
	Charge(ctx context.Context, req PaymentRequest) (*Payment, error)
}
