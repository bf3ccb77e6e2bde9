package domain

import "context"

type Hall struct {
	ID       int
	CinemaID int
	Name     string
	Layout   Layout
}

// Layout is the seating chart of a hall: an ordered sequence of rows, each
// holding an ordered sequence of seats. Row and seat numbers are unique
// within their scope at publish time, and the layout is treated as immutable
// once seances reference it.
type Layout struct {
	Rows []LayoutRow `json:"rows"`
}

type LayoutRow struct {
	Number int          `json:"number"`
	Seats  []LayoutSeat `json:"seats"`
}

type LayoutSeat struct {
	Number int `json:"number"`
}

// SeatExists reports whether the (row, seat) pair is part of the layout.
// A malformed or empty layout simply yields false; absence is not an error.
func (l Layout) SeatExists(row, seat int) bool {
	for _, r := range l.Rows {
		if r.Number != row {
			continue
		}

		for _, s := range r.Seats {
			if s.Number == seat {
				return true
			}
		}

		return false
	}

	return false
}

// Capacity is the total number of seats across all rows.
func (l Layout) Capacity() int {
	total := 0
	for _, r := range l.Rows {
		total += len(r.Seats)
	}

	return total
}

type HallRepository interface {
	GetById(ctx context.Context, id int) (*Hall, error)
}
