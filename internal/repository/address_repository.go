package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemline/repair-service/internal/domain"
)

// AddressRepository stores customer delivery addresses.
type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) error
	Update(ctx context.Context, address *domain.Address) error
	GetDefaultByCustomer(ctx context.Context, customerID string) (*domain.Address, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Address, error)
	ClearDefault(ctx context.Context, customerID string) error
}

type addressRepository struct {
	pool *pgxpool.Pool
}

// NewAddressRepository builds repository.
func NewAddressRepository(pool *pgxpool.Pool) AddressRepository {
	return &addressRepository{pool: pool}
}

const addressColumns = `id, user_id, province, district, sub_district, postal_code, details, is_default, created_at`

func (r *addressRepository) Create(ctx context.Context, address *domain.Address) error {
	const query = `
        INSERT INTO addresses (user_id, province, district, sub_district, postal_code, details, is_default)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		address.CustomerID,
		address.Province,
		address.District,
		address.SubDistrict,
		address.PostalCode,
		address.Details,
		address.IsDefault,
	).Scan(&address.ID, &address.CreatedAt)
}

func (r *addressRepository) Update(ctx context.Context, address *domain.Address) error {
	const query = `
        UPDATE addresses SET province=$1, district=$2, sub_district=$3, postal_code=$4, details=$5, is_default=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		address.Province,
		address.District,
		address.SubDistrict,
		address.PostalCode,
		address.Details,
		address.IsDefault,
		address.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *addressRepository) GetDefaultByCustomer(ctx context.Context, customerID string) (*domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 AND is_default=TRUE`
	var address domain.Address
	if err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&address.ID,
		&address.CustomerID,
		&address.Province,
		&address.District,
		&address.SubDistrict,
		&address.PostalCode,
		&address.Details,
		&address.IsDefault,
		&address.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Address
	for rows.Next() {
		var address domain.Address
		if err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.Province,
			&address.District,
			&address.SubDistrict,
			&address.PostalCode,
			&address.Details,
			&address.IsDefault,
			&address.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, address)
	}
	return result, rows.Err()
}

func (r *addressRepository) ClearDefault(ctx context.Context, customerID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE addresses SET is_default=FALSE WHERE user_id=$1 AND is_default=TRUE`, customerID)
	return err
}
