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
	"go.uber.org/zap"
)

const userFields = "id, name, email, password, role, is_active, avatar, created_at, updated_at"

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, hashedPassword string, avatar *string) (*entities.User, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, hashedPassword *string, avatar *string) (*entities.User, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

var userAllowedFilter = map[string]string{
	"role":      "role",
	"is_active": "is_active",
}

var userAllowedSort = map[string]string{
	"id":   "id",
	"name": "name",
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	builder := psql.Select(userFields).From("users")
	builder = applyListFilter(builder, filter, userAllowedFilter, []string{"name", "email"}, userAllowedSort)
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

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countBuilder := psql.Select("COUNT(*)").From("users")
	countBuilder = applyListConditions(countBuilder, filter, userAllowedFilter, []string{"name", "email"})
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := scanUser(r.storage.QueryRow(ctx, "SELECT "+userFields+" FROM users WHERE email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, payload dto.CreateUserDTO, hashedPassword string, avatar *string) (*entities.User, error) {
	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	user, err := scanUser(r.storage.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, is_active, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userFields,
		payload.Name, payload.Email, hashedPassword, payload.Role, isActive, avatar,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, hashedPassword *string, avatar *string) (*entities.User, error) {
	user, err := scanUser(r.storage.QueryRow(ctx, `
		UPDATE users
		SET name       = COALESCE($1, name),
		    email      = COALESCE($2, email),
		    password   = COALESCE($3, password),
		    role       = COALESCE($4, role),
		    is_active  = COALESCE($5, is_active),
		    avatar     = COALESCE($6, avatar),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING `+userFields,
		payload.Name, payload.Email, hashedPassword, payload.Role, payload.IsActive, avatar, id,
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
	return user, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.IsActive,
		&user.Avatar,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	user.UpdatedAt = updatedAt.Format("2006-01-02 15:04:05")
	return &user, nil
}
