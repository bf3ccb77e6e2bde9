package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kinopark/cinema-booking-system/api"
	"github.com/kinopark/cinema-booking-system/internal/booking"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

const (
	DefaultRecencyWindow = 60 * time.Second
	MinRecencyWindow     = 5 * time.Second
	MaxRecencyWindow     = 10 * time.Minute
)

func (app *Application) readSeanceIdQuery(r *http.Request) (int, error) {
	seanceId, err := app.readInt(r.URL.Query(), "seance_id", 0)
	if err != nil {
		return 0, err
	}

	if seanceId < 1 {
		return 0, errors.New("seance_id must be a positive integer")
	}

	return seanceId, nil
}

func (app *Application) ListTickets(w http.ResponseWriter, r *http.Request) {
	seanceId, err := app.readSeanceIdQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tickets, err := app.ticketRepo.ListBySeance(r.Context(), seanceId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMsg(w, r, domain.ErrSeanceNotFound.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TicketListResponse{
		SeanceId: seanceId,
		Tickets:  toApiTickets(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetRecentlyBought(w http.ResponseWriter, r *http.Request) {
	seanceId, err := app.readSeanceIdQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	windowSeconds, err := app.readInt(r.URL.Query(), "window", int(DefaultRecencyWindow.Seconds()))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	window := time.Duration(windowSeconds) * time.Second
	if window < MinRecencyWindow {
		window = MinRecencyWindow
	}
	if window > MaxRecencyWindow {
		window = MaxRecencyWindow
	}

	tickets, err := app.ticketRepo.ListRecent(r.Context(), seanceId, time.Now().Add(-window))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithMsg(w, r, domain.ErrSeanceNotFound.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.RecentTicketsResponse{
		SeanceId:      seanceId,
		WindowSeconds: int(window.Seconds()),
		Tickets:       toApiTickets(tickets),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) BuyTickets(w http.ResponseWriter, r *http.Request) {
	var input api.PurchaseRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seats := make([]domain.SeatRequest, len(input.Tickets))
	for i, ticket := range input.Tickets {
		seats[i] = domain.SeatRequest{Row: ticket.Row, Seat: ticket.Seat}
	}

	result, err := app.booking.Purchase(r.Context(), booking.PurchaseRequest{
		SeanceID: input.SeanceId,
		UserID:   app.contextGetUserId(r),
		Seats:    seats,
	})

	if err != nil {
		var seatErr domain.SeatValidationError

		switch {
		case errors.Is(err, domain.ErrSeanceNotFound):
			app.notFoundResponseWithMsg(w, r, err.Error())
		case errors.Is(err, booking.ErrNoSeatsRequested):
			app.unprocessableEntityResponse(w, r, err.Error())
		case errors.As(err, &seatErr):
			app.unprocessableEntityResponse(w, r, seatErr.Error())
		case errors.Is(err, domain.ErrTicketAlreadyBought):
			app.conflictResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrPaymentDeclined):
			app.paymentRequiredResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.ReceiptEmail != "" {
		app.sendReceiptMail(r, input.ReceiptEmail, result)
	}

	resp := api.PurchaseResponse{
		Message:          "Tickets purchased successfully",
		PaymentReference: result.Payment.Reference,
		AmountCents:      result.Payment.AmountCents,
		Tickets:          toApiTickets(result.Tickets),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// sendReceiptMail delivers the receipt in the background so a slow SMTP
// server cannot delay the purchase response.
func (app *Application) sendReceiptMail(r *http.Request, recipient string, result *booking.PurchaseResult) {
	logger := app.contextGetLogger(r)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(fmt.Sprintf("%v", err))
			}
		}()

		data := map[string]any{
			"movieTitle":       result.Seance.MovieTitle,
			"cinemaName":       result.Seance.CinemaName,
			"hallName":         result.Seance.HallName,
			"startsAt":         result.Seance.StartsAt.Format(time.RFC1123),
			"seats":            result.Tickets,
			"amount":           result.Payment.Amount().StringFixed(2),
			"currency":         result.Payment.Currency,
			"paymentReference": result.Payment.Reference,
		}

		err := app.mailer.Send(recipient, "ticket_receipt.tmpl", data)
		if err != nil {
			logger.Error("failed to send receipt mail", "error", err)
		}
	}()
}

func toApiTickets(tickets []domain.Ticket) []api.Ticket {
	apiTickets := make([]api.Ticket, len(tickets))

	for i, ticket := range tickets {
		apiTickets[i] = api.Ticket{
			Id:        ticket.ID,
			SeanceId:  ticket.SeanceID,
			Row:       ticket.Row,
			Seat:      ticket.Seat,
			CreatedAt: ticket.CreatedAt,
		}
	}

	return apiTickets
}
