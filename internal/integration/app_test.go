package integration_test

import (
	"context"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinopark/cinema-booking-system/internal/app"
	"github.com/kinopark/cinema-booking-system/internal/domain"
	"github.com/kinopark/cinema-booking-system/internal/mailer"
	"github.com/kinopark/cinema-booking-system/internal/payment"
)

type TestApp struct {
	App      *app.Application
	DB       *pgxpool.Pool
	Mailer   *mailer.MockMailer
	Payments *togglePaymentProvider
}

// togglePaymentProvider lets a test flip the gateway into decline mode and
// back without restarting the application.
type togglePaymentProvider struct {
	decline atomic.Bool
	inner   domain.PaymentProvider
}

func newTogglePaymentProvider() *togglePaymentProvider {
	return &togglePaymentProvider{
		inner: payment.NewSimulator(0),
	}
}

func (p *togglePaymentProvider) Charge(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	if p.decline.Load() {
		return nil, domain.ErrPaymentDeclined
	}

	return p.inner.Charge(ctx, req)
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	mockMailer := mailer.NewMockMailer()
	payments := newTogglePaymentProvider()

	cfg.Mailer = mockMailer
	cfg.PaymentProvider = payments

	application, err := app.New(cfg)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:      application,
		DB:       application.DB(),
		Mailer:   mockMailer,
		Payments: payments,
	}, nil
}
