// Package booking orchestrates a single ticket purchase end to end:
// seance freshness check, seat validation against the hall layout, atomic
// reservation in the ticket ledger, payment, and rollback of the
// reservation when payment fails.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

var ErrNoSeatsRequested = errors.New("at least one ticket is required")

type PurchaseRequest struct {
	SeanceID int
	UserID   *int
	Seats    []domain.SeatRequest
}

type PurchaseResult struct {
	Seance  *domain.Seance
	Tickets []domain.Ticket
	Payment *domain.Payment
}

type Engine struct {
	seances  domain.SeanceRepository
	halls    domain.HallRepository
	tickets  domain.TicketRepository
	payments domain.PaymentProvider
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Engine)

// WithClock replaces the engine's notion of "now"; used by tests to pin
// seance expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(
	seances domain.SeanceRepository,
	halls domain.HallRepository,
	tickets domain.TicketRepository,
	payments domain.PaymentProvider,
	logger *slog.Logger,
	opts ...Option) *Engine {

	engine := &Engine{
		seances:  seances,
		halls:    halls,
		tickets:  tickets,
		payments: payments,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// Purchase runs one booking attempt. Either every requested seat ends up
// ticketed and paid, or none does; callers never observe partial success.
// Contested seats are decided by the ledger's uniqueness constraint, not by
// any check here, so whichever concurrent reservation commits first wins.
func (e *Engine) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	seance, err := e.seances.GetById(ctx, req.SeanceID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrSeanceNotFound
		}

		return nil, err
	}

	// Expired seances are indistinguishable from absent ones for buyers;
	// listings already exclude them, this closes the race between listing
	// and buying.
	if seance.Expired(e.now()) {
		return nil, domain.ErrSeanceNotFound
	}

	if len(req.Seats) == 0 {
		return nil, ErrNoSeatsRequested
	}

	hall, err := e.halls.GetById(ctx, seance.HallID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hall %d: %w", seance.HallID, err)
	}

	// Seats are validated in request order; the first missing seat decides
	// the reported error.
	for _, seat := range req.Seats {
		if !hall.Layout.SeatExists(seat.Row, seat.Seat) {
			return nil, domain.SeatValidationError{Row: seat.Row, Seat: seat.Seat}
		}
	}

	tickets, err := e.tickets.ReserveBatch(ctx, seance.ID, req.UserID, req.Seats)
	if err != nil {
		return nil, err
	}

	payment, err := e.payments.Charge(ctx, domain.PaymentRequest{
		Reference:   uuid.NewString(),
		AmountCents: seance.PriceCents * int64(len(tickets)),
		Currency:    "USD",
		Description: fmt.Sprintf("%d ticket(s) for %s, %s", len(tickets), seance.MovieTitle, seance.CinemaName),
	})

	if err != nil {
		// The rollback must complete before the failure is reported;
		// reserved-but-unpaid seats would block other buyers indefinitely.
		if releaseErr := e.release(ctx, tickets); releaseErr != nil {
			return nil, errors.Join(err, releaseErr)
		}

		if errors.Is(err, domain.ErrPaymentDeclined) {
			e.logger.Warn(
				"payment declined, reservation rolled back",
				"seance_id", seance.ID,
				"seats", len(tickets),
			)

			return nil, domain.ErrPaymentDeclined
		}

		return nil, fmt.Errorf("payment provider: %w", err)
	}

	e.logger.Info(
		"purchase completed",
		"seance_id", seance.ID,
		"seats", len(tickets),
		"amount_cents", payment.AmountCents,
		"payment_reference", payment.Reference,
	)

	return &PurchaseResult{
		Seance:  seance,
		Tickets: tickets,
		Payment: payment,
	}, nil
}

func (e *Engine) release(ctx context.Context, tickets []domain.Ticket) error {
	ids := make([]int, len(tickets))
	for i, ticket := range tickets {
		ids[i] = ticket.ID
	}

	if err := e.tickets.ReleaseBatch(ctx, ids); err != nil {
		e.logger.Error("failed to roll back reservation", "ticket_ids", ids, "error", err)

		return fmt.Errorf("failed to roll back reservation: %w", err)
	}

	return nil
}
