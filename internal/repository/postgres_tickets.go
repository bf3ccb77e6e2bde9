package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) ListBySeance(ctx context.Context, seanceID int) ([]domain.Ticket, error) {
	if err := p.checkSeanceExists(ctx, seanceID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, seance_id, seat_row, seat_number, user_id, created_at
		FROM tickets
		WHERE seance_id = $1
		ORDER BY seat_row, seat_number
	`

	return p.queryTickets(ctx, query, seanceID)
}

func (p *PostgresTicketRepository) ListRecent(
	ctx context.Context,
	seanceID int,
	since time.Time) ([]domain.Ticket, error) {

	if err := p.checkSeanceExists(ctx, seanceID); err != nil {
		return nil, err
	}

	query := `
		SELECT id, seance_id, seat_row, seat_number, user_id, created_at
		FROM tickets
		WHERE seance_id = $1 AND created_at >= $2
		ORDER BY created_at, id
	`

	return p.queryTickets(ctx, query, seanceID, since)
}

// ReserveBatch inserts all requested seats inside one transaction. The
// unique index on (seance_id, seat_row, seat_number) is the arbiter under
// concurrency: a violation on any seat aborts the transaction, so no row of
// a conflicting batch is ever retained.
func (p *PostgresTicketRepository) ReserveBatch(
	ctx context.Context,
	seanceID int,
	userID *int,
	seats []domain.SeatRequest) ([]domain.Ticket, error) {

	tickets := make([]domain.Ticket, 0, len(seats))

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO tickets (seance_id, seat_row, seat_number, user_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		for _, seat := range seats {
			ticket := domain.Ticket{
				SeanceID: seanceID,
				Row:      seat.Row,
				Seat:     seat.Seat,
				UserID:   userID,
			}

			err := tx.QueryRow(ctx, query, seanceID, seat.Row, seat.Seat, userID).
				Scan(&ticket.ID, &ticket.CreatedAt)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
					return domain.ErrTicketAlreadyBought
				}

				return err
			}

			tickets = append(tickets, ticket)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return tickets, nil
}

// ReleaseBatch deletes the given tickets in a single statement; used only to
// unwind a reservation whose payment failed.
func (p *PostgresTicketRepository) ReleaseBatch(ctx context.Context, ticketIDs []int) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	query := `DELETE FROM tickets WHERE id = ANY($1)`

	_, err := p.db.Exec(ctx, query, ticketIDs)

	return err
}

func (p *PostgresTicketRepository) checkSeanceExists(ctx context.Context, seanceID int) error {
	query := `SELECT EXISTS (SELECT 1 FROM seances WHERE id = $1)`

	var exists bool
	if err := p.db.QueryRow(ctx, query, seanceID).Scan(&exists); err != nil {
		return err
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresTicketRepository) queryTickets(
	ctx context.Context,
	query string,
	args ...any) ([]domain.Ticket, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.SeanceID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.UserID,
			&ticket.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
