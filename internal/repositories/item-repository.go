package repositories

import (
	"context"
	"errors"
	"time"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/unitid"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemFields = "id, equipment_id, sequence_no, unit_id, condition, is_borrowed, created_at, updated_at"

type ItemRepositoryInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]entities.EquipmentItem, uint64, error)
	FindItem(ctx context.Context, id uint64) (*entities.EquipmentItem, error)
	CreateItem(ctx context.Context, payload dto.CreateItemDTO) (*entities.EquipmentItem, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateItemDTO) (*entities.EquipmentItem, error)
	DeleteItem(ctx context.Context, id uint64) error
}

type ItemRepository struct {
	storage *pgxpool.Pool
}

func NewItemRepository(storage *pgxpool.Pool) ItemRepositoryInterface {
	return &ItemRepository{storage: storage}
}

var itemAllowedFilter = map[string]string{
	"equipment_id": "equipment_id",
	"condition":    "condition",
	"is_borrowed":  "is_borrowed",
}

var itemAllowedSort = map[string]string{
	"id":         "id",
	"unit_id":    "unit_id",
	"created_at": "created_at",
}

func (r *ItemRepository) GetItems(ctx context.Context, filter types.Filter) ([]entities.EquipmentItem, uint64, error) {
	builder := psql.Select(itemFields).From("equipment_items")
	builder = applyListFilter(builder, filter, itemAllowedFilter, []string{"unit_id"}, itemAllowedSort)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("id DESC")
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

	items := make([]entities.EquipmentItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From("equipment_items")
	countBuilder = applyListConditions(countBuilder, filter, itemAllowedFilter, []string{"unit_id"})
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *ItemRepository) FindItem(ctx context.Context, id uint64) (*entities.EquipmentItem, error) {
	row := r.storage.QueryRow(ctx, "SELECT "+itemFields+" FROM equipment_items WHERE id = $1", id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem выделяет инвентарный номер и создаёт единицу оборудования
// в одной транзакции.
//
// Блокировка строки оборудования (FOR UPDATE) сериализует выделение номеров
// в рамках одного оборудования: два конкурентных запроса не могут прочитать
// одинаковый MAX(sequence_no). Выделение для разных единиц оборудования друг
// друга не блокирует. Ограничение UNIQUE(equipment_id, sequence_no) страхует
// инвариант на уровне БД; его нарушение поднимается как ErrConflict.
func (r *ItemRepository) CreateItem(ctx context.Context, payload dto.CreateItemDTO) (*entities.EquipmentItem, error) {
	var created *entities.EquipmentItem

	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		var equipmentID uint64
		err := tx.QueryRow(ctx, "SELECT id FROM equipment WHERE id = $1 FOR UPDATE", payload.EquipmentID).Scan(&equipmentID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var lastSeq uint64
		err = tx.QueryRow(ctx,
			"SELECT COALESCE(MAX(sequence_no), 0) FROM equipment_items WHERE equipment_id = $1",
			equipmentID,
		).Scan(&lastSeq)
		if err != nil {
			return err
		}

		nextSeq := lastSeq + 1
		unitID := unitid.Format(equipmentID, nextSeq)

		isBorrowed := false
		if payload.IsBorrowed != nil {
			isBorrowed = *payload.IsBorrowed
		}

		row := tx.QueryRow(ctx, `
			INSERT INTO equipment_items (equipment_id, sequence_no, unit_id, condition, is_borrowed)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+itemFields,
			equipmentID, nextSeq, unitID, payload.Condition, isBorrowed,
		)

		created, err = scanItem(row)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateItem меняет состояние и/или флаг выдачи. Инвентарный номер и
// принадлежность оборудованию в SQL не фигурируют и измениться не могут.
func (r *ItemRepository) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateItemDTO) (*entities.EquipmentItem, error) {
	row := r.storage.QueryRow(ctx, `
		UPDATE equipment_items
		SET condition   = COALESCE($1, condition),
		    is_borrowed = COALESCE($2, is_borrowed),
		    updated_at  = CURRENT_TIMESTAMP
		WHERE id = $3
		RETURNING `+itemFields,
		payload.Condition, payload.IsBorrowed, id,
	)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*entities.EquipmentItem, error) {
	var item entities.EquipmentItem
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&item.ID,
		&item.EquipmentID,
		&item.SequenceNo,
		&item.UnitID,
		&item.Condition,
		&item.IsBorrowed,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	item.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
	return &item, nil
}
