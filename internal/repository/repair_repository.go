package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemline/repair-service/internal/domain"
)

// RepairFilter captures listing parameters for the board and history views.
type RepairFilter struct {
	CustomerID *string
	Statuses   []domain.RepairStatus
	Limit      int
	Offset     int
}

// StatusCount is one row of the finance summary.
type StatusCount struct {
	Status   domain.RepairStatus
	Count    int64
	NetTotal float64
}

// RepairRepository encapsulates repair ticket persistence.
type RepairRepository interface {
	Create(ctx context.Context, repair *domain.RepairTicket) error
	Update(ctx context.Context, repair *domain.RepairTicket) error
	GetByID(ctx context.Context, id string) (*domain.RepairTicket, error)
	ListWithFilter(ctx context.Context, filter RepairFilter) ([]domain.RepairTicket, error)
	Delete(ctx context.Context, id string) error
	SummarizeByStatus(ctx context.Context) ([]StatusCount, error)
}

type repairRepository struct {
	pool *pgxpool.Pool
}

// NewRepairRepository instantiates repository.
func NewRepairRepository(pool *pgxpool.Pool) RepairRepository {
	return &repairRepository{pool: pool}
}

const repairColumns = `id, customer_id, status, items, return_method, tracking_number,
       cost_internal, cost_external, discount, shipping_cost, created_at, updated_at, completed_at`

func (r *repairRepository) Create(ctx context.Context, repair *domain.RepairTicket) error {
	items, err := json.Marshal(repair.Items)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO repairs (customer_id, status, items, return_method, tracking_number,
                             cost_internal, cost_external, discount, shipping_cost)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		repair.CustomerID,
		repair.Status,
		items,
		repair.ReturnMethod,
		repair.TrackingNumber,
		repair.CostInternal,
		repair.CostExternal,
		repair.Discount,
		repair.ShippingCost,
	).Scan(&repair.ID, &repair.CreatedAt, &repair.UpdatedAt)
}

func (r *repairRepository) Update(ctx context.Context, repair *domain.RepairTicket) error {
	items, err := json.Marshal(repair.Items)
	if err != nil {
		return err
	}
	const query = `
        UPDATE repairs SET customer_id=$1, status=$2, items=$3, return_method=$4, tracking_number=$5,
            cost_internal=$6, cost_external=$7, discount=$8, shipping_cost=$9, completed_at=$10,
            updated_at=NOW()
        WHERE id=$11
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		repair.CustomerID,
		repair.Status,
		items,
		repair.ReturnMethod,
		repair.TrackingNumber,
		repair.CostInternal,
		repair.CostExternal,
		repair.Discount,
		repair.ShippingCost,
		repair.CompletedAt,
		repair.ID,
	).Scan(&repair.UpdatedAt)
}

func (r *repairRepository) GetByID(ctx context.Context, id string) (*domain.RepairTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM repairs WHERE id=$1`, repairColumns)
	row := r.pool.QueryRow(ctx, query, id)
	return scanRepair(row)
}

func (r *repairRepository) ListWithFilter(ctx context.Context, filter RepairFilter) ([]domain.RepairTicket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM repairs WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		repairColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RepairTicket
	for rows.Next() {
		repair, err := scanRepair(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *repair)
	}
	return result, rows.Err()
}

func (r *repairRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM repairs WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repairRepository) SummarizeByStatus(ctx context.Context) ([]StatusCount, error) {
	const query = `
        SELECT status, COUNT(*),
               COALESCE(SUM(COALESCE(cost_external,0) - COALESCE(discount,0) + COALESCE(shipping_cost,0)), 0)
        FROM repairs GROUP BY status`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var entry StatusCount
		if err := rows.Scan(&entry.Status, &entry.Count, &entry.NetTotal); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func scanRepair(row pgx.Row) (*domain.RepairTicket, error) {
	var repair domain.RepairTicket
	var items []byte
	if err := row.Scan(
		&repair.ID,
		&repair.CustomerID,
		&repair.Status,
		&items,
		&repair.ReturnMethod,
		&repair.TrackingNumber,
		&repair.CostInternal,
		&repair.CostExternal,
		&repair.Discount,
		&repair.ShippingCost,
		&repair.CreatedAt,
		&repair.UpdatedAt,
		&repair.CompletedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &repair.Items); err != nil {
		return nil, err
	}
	return &repair, nil
}
