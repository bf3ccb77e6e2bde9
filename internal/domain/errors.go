package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrSeanceNotFound      = errors.New("no seance matches this request")
	ErrTicketAlreadyBought = errors.New("ticket(s) already bought for the selected seats")
	ErrPaymentDeclined     = errors.New("payment did not go through, try again")
)

// SeatValidationError identifies the first requested seat that does not
// exist in a hall's layout.
type SeatValidationError struct {
	Row  int
	Seat int
}

func (e SeatValidationError) Error() string {
	return fmt.Sprintf("seat %d in row %d does not exist in this hall", e.Seat, e.Row)
}
