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

const categoryFields = "id, name, created_at, updated_at"

type CategoryRepositoryInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]entities.Category, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*entities.Category, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*entities.Category, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryRepository struct {
	storage *pgxpool.Pool
}

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage}
}

func (r *CategoryRepository) GetCategories(ctx context.Context, filter types.Filter) ([]entities.Category, uint64, error) {
	builder := psql.Select(categoryFields).From("categories")
	builder = applyListFilter(builder, filter, nil, []string{"name"}, map[string]string{"id": "id", "name": "name"})
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

	categories := make([]entities.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From("categories")
	countBuilder = applyListConditions(countBuilder, filter, nil, []string{"name"})
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

func (r *CategoryRepository) FindCategory(ctx context.Context, id uint64) (*entities.Category, error) {
	category, err := scanCategory(r.storage.QueryRow(ctx, "SELECT "+categoryFields+" FROM categories WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.Category, error) {
	category, err := scanCategory(r.storage.QueryRow(ctx,
		"INSERT INTO categories (name) VALUES ($1) RETURNING "+categoryFields,
		payload.Name,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*entities.Category, error) {
	category, err := scanCategory(r.storage.QueryRow(ctx,
		"UPDATE categories SET name = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING "+categoryFields,
		payload.Name, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return category, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*entities.Category, error) {
	var category entities.Category
	var createdAt, updatedAt time.Time

	if err := row.Scan(&category.ID, &category.Name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	category.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	category.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
	return &category, nil
}
