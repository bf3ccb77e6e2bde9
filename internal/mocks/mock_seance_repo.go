package mocks

import (
	"context"

	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type MockSeanceRepo struct {
	GetByIdFunc     func(ctx context.Context, id int) (*domain.Seance, error)
	GetUpcomingFunc func(ctx context.Context, pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error)
	GetExpiredFunc  func(ctx context.Context, pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error)
	GetForTodayFunc func(ctx context.Context, cinemaSlug string, hallID int) ([]domain.Seance, error)
	GetScheduleFunc func(ctx context.Context, filters domain.ScheduleFilters) ([]domain.DaySchedule, error)
}

func (m *MockSeanceRepo) GetById(ctx context.Context, id int) (*domain.Seance, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockSeanceRepo) GetUpcoming(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error) {

	return m.GetUpcomingFunc(ctx, pagination)
}

func (m *MockSeanceRepo) GetExpired(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error) {

	return m.GetExpiredFunc(ctx, pagination)
}

func (m *MockSeanceRepo) GetForToday(
	ctx context.Context,
	cinemaSlug string,
	hallID int) ([]domain.Seance, error) {

	return m.GetForTodayFunc(ctx, cinemaSlug, hallID)
}

func (m *MockSeanceRepo) GetSchedule(
	ctx context.Context,
	filters domain.ScheduleFilters) ([]domain.DaySchedule, error) {

	return m.GetScheduleFunc(ctx, filters)
}
