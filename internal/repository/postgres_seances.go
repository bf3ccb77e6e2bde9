package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

const seanceColumns = `
	s.id,
	s.movie_id,
	s.hall_id,
	s.technology_id,
	s.starts_at,
	s.price_cents,
	m.title,
	m.slug,
	h.name,
	c.name,
	c.slug,
	t.name
`

const seanceJoins = `
	FROM seances s
	JOIN movies m ON s.movie_id = m.id
	JOIN halls h ON s.hall_id = h.id
	JOIN cinemas c ON h.cinema_id = c.id
	JOIN technologies t ON s.technology_id = t.id
`

type PostgresSeanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeanceRepository(db *pgxpool.Pool) *PostgresSeanceRepository {
	return &PostgresSeanceRepository{
		db: db,
	}
}

func scanSeance(row pgx.Row, seance *domain.Seance) error {
	return row.Scan(
		&seance.ID,
		&seance.MovieID,
		&seance.HallID,
		&seance.TechnologyID,
		&seance.StartsAt,
		&seance.PriceCents,
		&seance.MovieTitle,
		&seance.MovieSlug,
		&seance.HallName,
		&seance.CinemaName,
		&seance.CinemaSlug,
		&seance.Technology,
	)
}

func (p *PostgresSeanceRepository) GetById(ctx context.Context, id int) (*domain.Seance, error) {
	query := `SELECT ` + seanceColumns + seanceJoins + `WHERE s.id = $1`

	var seance domain.Seance

	err := scanSeance(p.db.QueryRow(ctx, query, id), &seance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &seance, nil
}

func (p *PostgresSeanceRepository) GetUpcoming(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), ` + seanceColumns + seanceJoins + `
		WHERE s.starts_at >= NOW()
		ORDER BY s.starts_at, s.id
		LIMIT $1 OFFSET $2
	`

	return p.querySeancesPage(ctx, query, pagination, pagination.Limit(), pagination.Offset())
}

// GetExpired lists past seances together with the number of tickets that
// were sold for each, for reporting. Expired seances are never purchasable
// but their ticket records are retained.
func (p *PostgresSeanceRepository) GetExpired(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Seance, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(), ` + seanceColumns + `,
			(SELECT COUNT(*) FROM tickets tk WHERE tk.seance_id = s.id) AS tickets_sold
		` + seanceJoins + `
		WHERE s.starts_at < NOW()
		ORDER BY s.starts_at DESC, s.id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	seances := make([]domain.Seance, 0, pagination.PageSize)
	totalRecords := 0

	for rows.Next() {
		var seance domain.Seance

		err := rows.Scan(
			&totalRecords,
			&seance.ID,
			&seance.MovieID,
			&seance.HallID,
			&seance.TechnologyID,
			&seance.StartsAt,
			&seance.PriceCents,
			&seance.MovieTitle,
			&seance.MovieSlug,
			&seance.HallName,
			&seance.CinemaName,
			&seance.CinemaSlug,
			&seance.Technology,
			&seance.TicketsSold,
		)
		if err != nil {
			return nil, nil, err
		}

		seances = append(seances, seance)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return seances, metadata, nil
}

func (p *PostgresSeanceRepository) querySeancesPage(
	ctx context.Context,
	query string,
	pagination domain.Pagination,
	args ...any) ([]domain.Seance, *domain.Metadata, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	seances := make([]domain.Seance, 0, pagination.PageSize)
	totalRecords := 0

	for rows.Next() {
		var seance domain.Seance

		err := rows.Scan(
			&totalRecords,
			&seance.ID,
			&seance.MovieID,
			&seance.HallID,
			&seance.TechnologyID,
			&seance.StartsAt,
			&seance.PriceCents,
			&seance.MovieTitle,
			&seance.MovieSlug,
			&seance.HallName,
			&seance.CinemaName,
			&seance.CinemaSlug,
			&seance.Technology,
		)
		if err != nil {
			return nil, nil, err
		}

		seances = append(seances, seance)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return seances, metadata, nil
}

func (p *PostgresSeanceRepository) GetForToday(
	ctx context.Context,
	cinemaSlug string,
	hallID int) ([]domain.Seance, error) {

	query := `
		SELECT ` + seanceColumns + seanceJoins + `
		WHERE s.starts_at >= NOW()
		  AND s.starts_at::date = CURRENT_DATE
		  AND ($1 = '' OR c.slug = $1)
		  AND ($2 = 0 OR s.hall_id = $2)
		ORDER BY s.starts_at, s.id
	`

	return p.querySeances(ctx, query, cinemaSlug, hallID)
}

// GetSchedule returns the upcoming seances of a cinema grouped by calendar
// day. Empty filter slices are not applied.
func (p *PostgresSeanceRepository) GetSchedule(
	ctx context.Context,
	filters domain.ScheduleFilters) ([]domain.DaySchedule, error) {

	query := `
		SELECT ` + seanceColumns + seanceJoins + `
		WHERE c.slug = $1
		  AND s.starts_at >= NOW()
		  AND (coalesce(cardinality($2::int[]), 0) = 0 OR s.hall_id = ANY($2))
		  AND (coalesce(cardinality($3::text[]), 0) = 0 OR m.slug = ANY($3))
		  AND (coalesce(cardinality($4::int[]), 0) = 0 OR s.technology_id = ANY($4))
		  AND ($5::date IS NULL OR s.starts_at::date = $5)
		ORDER BY s.starts_at, s.id
	`

	var date *time.Time
	if filters.Date != nil {
		d := filters.Date.Truncate(24 * time.Hour)
		date = &d
	}

	seances, err := p.querySeances(
		ctx,
		query,
		filters.CinemaSlug,
		filters.HallIDs,
		filters.MovieSlugs,
		filters.TechIDs,
		date,
	)
	if err != nil {
		return nil, err
	}

	return groupByDay(seances), nil
}

func (p *PostgresSeanceRepository) querySeances(
	ctx context.Context,
	query string,
	args ...any) ([]domain.Seance, error) {

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seances := make([]domain.Seance, 0)

	for rows.Next() {
		var seance domain.Seance

		if err := scanSeance(rows, &seance); err != nil {
			return nil, err
		}

		seances = append(seances, seance)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seances, nil
}

func groupByDay(seances []domain.Seance) []domain.DaySchedule {
	// Seances arrive ordered by start time, so one pass suffices.
	var days []domain.DaySchedule

	for _, seance := range seances {
		date := seance.StartsAt.Truncate(24 * time.Hour)

		if len(days) == 0 || !days[len(days)-1].Date.Equal(date) {
			days = append(days, domain.DaySchedule{Date: date})
		}

		last := &days[len(days)-1]
		last.Seances = append(last.Seances, seance)
	}

	return days
}
