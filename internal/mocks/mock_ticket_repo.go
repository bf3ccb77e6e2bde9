package mocks

import (
	"context"
	"time"

	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type MockTicketRepo struct {
	ListBySeanceFunc func(ctx context.Context, seanceID int) ([]domain.Ticket, error)
	ListRecentFunc   func(ctx context.Context, seanceID int, since time.Time) ([]domain.Ticket, error)
	ReserveBatchFunc func(ctx context.Context, seanceID int, userID *int, seats []domain.SeatRequest) ([]domain.Ticket, error)
	ReleaseBatchFunc func(ctx context.Context, ticketIDs []int) error
}

func (m *MockTicketRepo) ListBySeance(ctx context.Context, seanceID int) ([]domain.Ticket, error) {
	return m.ListBySeanceFunc(ctx, seanceID)
}

func (m *MockTicketRepo) ListRecent(
	ctx context.Context,
	seanceID int,
	since time.Time) ([]domain.Ticket, error) {

	return m.ListRecentFunc(ctx, seanceID, since)
}

func (m *MockTicketRepo) ReserveBatch(
	ctx context.Context,
	seanceID int,
	userID *int,
	seats []domain.SeatRequest) ([]domain.Ticket, error) {

	return m.ReserveBatchFunc(ctx, seanceID, userID, seats)
}

func (m *MockTicketRepo) ReleaseBatch(ctx context.Context, ticketIDs []int) error {
	return m.ReleaseBatchFunc(ctx, ticketIDs)
}
