package domain

import (
	"context"
	"time"
)

// Ticket is a sold seat for a specific seance. The (SeanceID, Row, Seat)
// tuple is unique across the whole ledger; the database constraint on it is
// the final arbiter under concurrent purchases.
type Ticket struct {
	ID        int
	SeanceID  int
	Row       int
	Seat      int
	UserID    *int
	CreatedAt time.Time
}

// SeatRequest is one (row, seat) pair of a purchase request. It has no
// identity of its own and only lives for the duration of a booking call.
type SeatRequest struct {
	Row  int
	Seat int
}

type TicketRepository interface {
	ListBySeance(ctx context.Context, seanceID int) ([]Ticket, error)
	ListRecent(ctx context.Context, seanceID int, since time.Time) ([]Ticket, error)

	// ReserveBatch inserts one ticket per requested seat in a single
	// transaction. If any seat is already taken the whole batch fails with
	// ErrTicketAlreadyBought and no row is retained.
	ReserveBatch(ctx context.Context, seanceID int, userID *int, seats []SeatRequest) ([]Ticket, error)

	// ReleaseBatch deletes the given tickets. It exists solely to unwind a
	// reservation after a failed payment; sold tickets are never otherwise
	// deleted.
	ReleaseBatch(ctx context.Context, ticketIDs []int) error
}
