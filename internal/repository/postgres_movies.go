package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), id, title, slug, description, poster_url, release_date, duration, rating
		FROM movies
		WHERE $1 = '' OR title ILIKE '%%' || $1 || '%%'
		ORDER BY %s %s, id
		LIMIT $2 OFFSET $3`,
		sortColumn(pagination), pagination.SortDirection())

	rows, err := p.db.Query(ctx, query, pagination.Term, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Slug,
			&movie.Description,
			&movie.PosterUrl,
			&movie.ReleaseDate,
			&movie.Duration,
			&movie.Rating,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

// sortColumn whitelists the sortable columns; anything else falls back to id.
func sortColumn(pagination domain.Pagination) string {
	switch pagination.SortColumn() {
	case "title", "release_date", "duration", "rating":
		return pagination.SortColumn()
	default:
		return "id"
	}
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, slug, description, poster_url, release_date, duration, rating
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Slug,
		&movie.Description,
		&movie.PosterUrl,
		&movie.ReleaseDate,
		&movie.Duration,
		&movie.Rating,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}
