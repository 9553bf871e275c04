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

const laboratoryFields = `
	lab.id, lab.name, lab.location, lab.description, lab.custodian_id, lab.is_active, lab.gallery,
	u.id, u.name,
	lab.created_at, lab.updated_at`

const laboratoryFromClause = `laboratories lab
	LEFT JOIN users u ON u.id = lab.custodian_id`

type LaboratoryRepositoryInterface interface {
	GetLaboratories(ctx context.Context, filter types.Filter) ([]entities.Laboratory, uint64, error)
	FindLaboratory(ctx context.Context, id uint64) (*entities.Laboratory, error)
	FindLaboratoryByCustodian(ctx context.Context, custodianID uint64) (*entities.Laboratory, error)
	CreateLaboratory(ctx context.Context, payload dto.CreateLaboratoryDTO) (*entities.Laboratory, error)
	UpdateLaboratory(ctx context.Context, id uint64, payload dto.UpdateLaboratoryDTO, gallery *string) (*entities.Laboratory, error)
	DeleteLaboratory(ctx context.Context, id uint64) error
}

type LaboratoryRepository struct {
	storage *pgxpool.Pool
}

func NewLaboratoryRepository(storage *pgxpool.Pool) LaboratoryRepositoryInterface {
	return &LaboratoryRepository{storage: storage}
}

var laboratoryAllowedFilter = map[string]string{
	"is_active":    "lab.is_active",
	"custodian_id": "lab.custodian_id",
}

var laboratoryAllowedSort = map[string]string{
	"id":   "lab.id",
	"name": "lab.name",
}

var laboratorySearchColumns = []string{"lab.name", "lab.location", "lab.description"}

func (r *LaboratoryRepository) GetLaboratories(ctx context.Context, filter types.Filter) ([]entities.Laboratory, uint64, error) {
	builder := psql.Select(laboratoryFields).From(laboratoryFromClause)
	builder = applyListFilter(builder, filter, laboratoryAllowedFilter, laboratorySearchColumns, laboratoryAllowedSort)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("lab.id DESC")
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

	list := make([]entities.Laboratory, 0)
	for rows.Next() {
		lab, err := scanLaboratory(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *lab)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From(laboratoryFromClause)
	countBuilder = applyListConditions(countBuilder, filter, laboratoryAllowedFilter, laboratorySearchColumns)
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

func (r *LaboratoryRepository) FindLaboratory(ctx context.Context, id uint64) (*entities.Laboratory, error) {
	query := "SELECT " + laboratoryFields + " FROM " + laboratoryFromClause + " WHERE lab.id = $1"
	lab, err := scanLaboratory(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return lab, nil
}

func (r *LaboratoryRepository) FindLaboratoryByCustodian(ctx context.Context, custodianID uint64) (*entities.Laboratory, error) {
	query := "SELECT " + laboratoryFields + " FROM " + laboratoryFromClause + " WHERE lab.custodian_id = $1"
	lab, err := scanLaboratory(r.storage.QueryRow(ctx, query, custodianID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return lab, nil
}

func (r *LaboratoryRepository) CreateLaboratory(ctx context.Context, payload dto.CreateLaboratoryDTO) (*entities.Laboratory, error) {
	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	var id uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO laboratories (name, location, description, custodian_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		payload.Name, payload.Location, payload.Description, payload.CustodianID, isActive,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	return r.FindLaboratory(ctx, id)
}

// UpdateLaboratory: custodian_id пишется как есть — null.Int64 с Valid=false
// означает «снять ответственного». Консоль при редактировании лаборатории
// всегда передаёт это поле.
func (r *LaboratoryRepository) UpdateLaboratory(ctx context.Context, id uint64, payload dto.UpdateLaboratoryDTO, gallery *string) (*entities.Laboratory, error) {
	result, err := r.storage.Exec(ctx, `
		UPDATE laboratories
		SET name         = COALESCE($1, name),
		    location     = COALESCE($2, location),
		    description  = COALESCE($3, description),
		    custodian_id = $4,
		    is_active    = COALESCE($5, is_active),
		    gallery      = COALESCE($6, gallery),
		    updated_at   = CURRENT_TIMESTAMP
		WHERE id = $7`,
		payload.Name, payload.Location, payload.Description,
		custodianValue(payload),
		payload.IsActive, gallery, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	return r.FindLaboratory(ctx, id)
}

func custodianValue(payload dto.UpdateLaboratoryDTO) *int64 {
	if !payload.CustodianID.Valid {
		return nil
	}
	v := payload.CustodianID.Int64
	return &v
}

func (r *LaboratoryRepository) DeleteLaboratory(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM laboratories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanLaboratory(row pgx.Row) (*entities.Laboratory, error) {
	var lab entities.Laboratory
	var custodianID *uint64
	var custodianName *string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&lab.ID,
		&lab.Name,
		&lab.Location,
		&lab.Description,
		&lab.CustodianID,
		&lab.IsActive,
		&lab.Gallery,
		&custodianID,
		&custodianName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if custodianID != nil && custodianName != nil {
		lab.Custodian = &entities.User{ID: *custodianID, Name: *custodianName}
	}

	lab.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	lab.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
	return &lab, nil
}
