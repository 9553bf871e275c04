package repositories

import (
	"context"

	"labstock/internal/dto"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetInventoryReport(ctx context.Context) ([]dto.InventoryReportRowDTO, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

// GetInventoryReport собирает сводку по каждому оборудованию.
// Все счётчики — живые агрегаты по equipment_items.
func (r *ReportRepository) GetInventoryReport(ctx context.Context) ([]dto.InventoryReportRowDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT e.id, e.name, COALESCE(l.name, ''), e.condition,
		       COUNT(ei.id),
		       COUNT(ei.id) FILTER (WHERE NOT ei.is_borrowed),
		       COUNT(ei.id) FILTER (WHERE ei.is_borrowed),
		       COUNT(ei.id) FILTER (WHERE ei.condition = 'Damaged')
		FROM equipment e
		LEFT JOIN laboratories l ON l.id = e.laboratory_id
		LEFT JOIN equipment_items ei ON ei.equipment_id = e.id
		GROUP BY e.id, l.name
		ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := make([]dto.InventoryReportRowDTO, 0)
	for rows.Next() {
		var row dto.InventoryReportRowDTO
		err := rows.Scan(
			&row.EquipmentID,
			&row.EquipmentName,
			&row.LaboratoryName,
			&row.Condition,
			&row.ItemsTotal,
			&row.ItemsAvailable,
			&row.ItemsBorrowed,
			&row.ItemsDamaged,
		)
		if err != nil {
			return nil, err
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
