package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemline/repair-service/internal/domain"
)

// LocationRepository reads the Thai administrative-area lookup table.
type LocationRepository interface {
	ListAll(ctx context.Context) ([]domain.Location, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository builds repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) ListAll(ctx context.Context) ([]domain.Location, error) {
	const query = `SELECT id, province, amphoe, tambon, zipcode FROM thai_locations ORDER BY province, amphoe, tambon`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Province, &loc.Amphoe, &loc.Tambon, &loc.Zipcode); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}
