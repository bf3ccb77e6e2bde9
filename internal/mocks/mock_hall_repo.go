package mocks

import (
	"context"

	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type MockHallRepo struct {
	GetByIdFunc func(ctx context.Context, id int) (*domain.Hall, error)
}

func (m *MockHallRepo) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	return m.GetByIdFunc(ctx, id)
}
