package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gemline/repair-service/internal/domain"
)

// RepairHistoryRepository stores audit entries.
type RepairHistoryRepository interface {
	Create(ctx context.Context, history *domain.RepairHistory) error
	ListByRepair(ctx context.Context, repairID string) ([]domain.RepairHistory, error)
}

type repairHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewRepairHistoryRepository builds repository.
func NewRepairHistoryRepository(pool *pgxpool.Pool) RepairHistoryRepository {
	return &repairHistoryRepository{pool: pool}
}

func (r *repairHistoryRepository) Create(ctx context.Context, history *domain.RepairHistory) error {
	const query = `
        INSERT INTO repair_history (repair_id, changed_by_id, old_value, new_value)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		history.RepairID,
		history.ChangedByID,
		history.OldValue,
		history.NewValue,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *repairHistoryRepository) ListByRepair(ctx context.Context, repairID string) ([]domain.RepairHistory, error) {
	const query = `
        SELECT id, repair_id, changed_by_id, old_value, new_value, created_at
        FROM repair_history WHERE repair_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, repairID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RepairHistory
	for rows.Next() {
		var history domain.RepairHistory
		if err := rows.Scan(
			&history.ID,
			&history.RepairID,
			&history.ChangedByID,
			&history.OldValue,
			&history.NewValue,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
