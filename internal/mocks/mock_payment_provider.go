package mocks

import (
	"context"

	"github.com/kinopark/cinema-booking-system/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) Charge(
	ctx context.Context,
	req domain.PaymentRequest) (*domain.Payment, error) {

	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}
