package repositories

import (
	"context"
	"errors"
	"time"

	"labstock/internal/dto"
	"labstock/internal/entities"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// equipmentSelectFields: счётчики единиц считаются на каждом запросе из живой
// таблицы equipment_items — «доступное количество» нигде не хранится.
const equipmentSelectFields = `
	e.id, e.name, e.description, e.condition, e.image, e.laboratory_id, l.name,
	COUNT(ei.id) AS items_total,
	COUNT(ei.id) FILTER (WHERE NOT ei.is_borrowed) AS items_available,
	e.created_at, e.updated_at`

const equipmentFromClause = `equipment e
	LEFT JOIN laboratories l ON l.id = e.laboratory_id
	LEFT JOIN equipment_items ei ON ei.equipment_id = e.id`

const equipmentGroupBy = "e.id, l.name"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, q querier, payload dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, q querier, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	ReplaceCategories(ctx context.Context, q querier, equipmentID uint64, categoryIDs []uint64) error
	GetCategoriesFor(ctx context.Context, equipmentIDs []uint64) (map[uint64][]entities.Category, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

var equipmentAllowedFilter = map[string]string{
	"laboratory_id": "e.laboratory_id",
	"condition":     "e.condition",
}

var equipmentAllowedSort = map[string]string{
	"id":         "e.id",
	"name":       "e.name",
	"created_at": "e.created_at",
}

var equipmentSearchColumns = []string{"e.name", "e.description"}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	builder := psql.Select(equipmentSelectFields).From(equipmentFromClause).GroupBy(equipmentGroupBy)
	builder = applyListFilter(builder, filter, equipmentAllowedFilter, equipmentSearchColumns, equipmentAllowedSort)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("e.id DESC")
	}
	builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *eq)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From("equipment e")
	countBuilder = applyListConditions(countBuilder, filter, equipmentAllowedFilter, equipmentSearchColumns)
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := "SELECT " + equipmentSelectFields + " FROM " + equipmentFromClause +
		" WHERE e.id = $1 GROUP BY " + equipmentGroupBy

	eq, err := scanEquipment(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return eq, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, q querier, payload dto.CreateEquipmentDTO) (uint64, error) {
	var id uint64
	err := q.QueryRow(ctx, `
		INSERT INTO equipment (name, description, condition, image, laboratory_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		payload.Name, payload.Description, payload.Condition, payload.Image, payload.LaboratoryID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, q querier, id uint64, payload dto.UpdateEquipmentDTO) error {
	result, err := q.Exec(ctx, `
		UPDATE equipment
		SET name          = COALESCE($1, name),
		    description   = COALESCE($2, description),
		    condition     = COALESCE($3, condition),
		    image         = COALESCE($4, image),
		    laboratory_id = COALESCE($5, laboratory_id),
		    updated_at    = CURRENT_TIMESTAMP
		WHERE id = $6`,
		payload.Name, payload.Description, payload.Condition, payload.Image, payload.LaboratoryID, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEquipment удаляет оборудование; единицы и связи с категориями
// уходят каскадом на уровне схемы (ON DELETE CASCADE).
func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) ReplaceCategories(ctx context.Context, q querier, equipmentID uint64, categoryIDs []uint64) error {
	if _, err := q.Exec(ctx, "DELETE FROM equipment_categories WHERE equipment_id = $1", equipmentID); err != nil {
		return err
	}

	for _, categoryID := range categoryIDs {
		_, err := q.Exec(ctx,
			"INSERT INTO equipment_categories (equipment_id, category_id) VALUES ($1, $2)",
			equipmentID, categoryID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			// Ссылка на несуществующую категорию — ошибка запроса, не сервера.
			if isForeignKeyViolation(err) {
				return apperrors.ErrBadRequest
			}
			return err
		}
	}
	return nil
}

func (r *EquipmentRepository) GetCategoriesFor(ctx context.Context, equipmentIDs []uint64) (map[uint64][]entities.Category, error) {
	result := make(map[uint64][]entities.Category, len(equipmentIDs))
	if len(equipmentIDs) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.storage.Query(ctx, `
		SELECT ec.equipment_id, c.id, c.name
		FROM equipment_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.equipment_id = ANY($1)
		ORDER BY c.name`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var equipmentID uint64
		var category entities.Category
		if err := rows.Scan(&equipmentID, &category.ID, &category.Name); err != nil {
			return nil, err
		}
		result[equipmentID] = append(result[equipmentID], category)
	}
	return result, rows.Err()
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var eq entities.Equipment
	var lab entities.Laboratory
	var labName *string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&eq.ID,
		&eq.Name,
		&eq.Description,
		&eq.Condition,
		&eq.Image,
		&eq.LaboratoryID,
		&labName,
		&eq.ItemsTotal,
		&eq.ItemsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if labName != nil {
		lab.ID = eq.LaboratoryID
		lab.Name = *labName
		eq.Laboratory = &lab
	}

	eq.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	eq.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
	return &eq, nil
}
