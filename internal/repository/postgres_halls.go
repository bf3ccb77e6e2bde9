package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kinopark/cinema-booking-system/internal/domain"
)

type PostgresHallRepository struct {
	db *pgxpool.Pool
}

func NewPostgresHallRepository(db *pgxpool.Pool) *PostgresHallRepository {
	return &PostgresHallRepository{
		db: db,
	}
}

func (p *PostgresHallRepository) GetById(ctx context.Context, id int) (*domain.Hall, error) {
	query := `
		SELECT id, cinema_id, name, layout
		FROM halls
		WHERE id = $1
	`

	var hall domain.Hall
	var layoutJson json.RawMessage

	err := p.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.CinemaID,
		&hall.Name,
		&layoutJson,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	// A malformed layout leaves the zero value in place; seat lookups
	// against it fail closed as "seat not found".
	if len(layoutJson) > 0 {
		_ = json.Unmarshal(layoutJson, &hall.Layout)
	}

	return &hall, nil
}
