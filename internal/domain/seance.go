package domain

import (
	"context"
	"time"
)

// Seance is a single scheduled screening of a movie in a specific hall at a
// specific time and price. PriceCents is the ticket price in the smallest
// currency unit.
type Seance struct {
	ID           int
	MovieID      int
	HallID       int
	TechnologyID int
	StartsAt     time.Time
	PriceCents   int64

	// Joined display fields, populated by directory queries.
	MovieTitle  string
	MovieSlug   string
	HallName    string
	CinemaName  string
	CinemaSlug  string
	Technology  string
	TicketsSold int
}

// Expired reports whether the seance can no longer be sold at the given
// instant. Expired seances are kept for historical ticket records.
func (s Seance) Expired(now time.Time) bool {
	return !s.StartsAt.After(now)
}

type ScheduleFilters struct {
	CinemaSlug string
	HallIDs    []int
	MovieSlugs []string
	TechIDs    []int
	Date       *time.Time
}

// DaySchedule groups the seances of one calendar day, ordered by start time.
type DaySchedule struct {
	Date    time.Time
	Seances []Seance
}

type SeanceRepository interface {
	GetById(ctx context.Context, id int) (*Seance, error)
	GetUpcoming(ctx context.Context, pagination Pagination) ([]Seance, *Metadata, error)
	GetExpired(ctx context.Context, pagination Pagination) ([]Seance, *Metadata, error)
	GetForToday(ctx context.Context, cinemaSlug string, hallID int) ([]Seance, error)
	GetSchedule(ctx context.Context, filters ScheduleFilters) ([]DaySchedule, error)
}
