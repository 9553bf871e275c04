package repositories

import (
	"errors"
	"fmt"
	"strings"

	"labstock/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql — общий билдер запросов с позиционными аргументами PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// isUniqueViolation распознаёт нарушение ограничения уникальности.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isForeignKeyViolation распознаёт ссылку на несуществующую строку.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// applyListFilter навешивает на билдер условия из запроса списка:
// фильтры по разрешённым колонкам (значение "1,2,3" превращается в IN),
// поиск ILIKE по разрешённым колонкам и сортировку.
// allowedFilter отображает имя поля запроса в SQL-колонку.
func applyListFilter(builder sq.SelectBuilder, f types.Filter, allowedFilter map[string]string, searchColumns []string, allowedSort map[string]string) sq.SelectBuilder {
	for field, raw := range f.Filter {
		column, ok := allowedFilter[field]
		if !ok {
			continue
		}
		value := fmt.Sprintf("%v", raw)
		if strings.Contains(value, ",") {
			builder = builder.Where(sq.Eq{column: strings.Split(value, ",")})
		} else {
			builder = builder.Where(sq.Eq{column: value})
		}
	}

	if f.Search != "" && len(searchColumns) > 0 {
		var conditions []sq.Sqlizer
		pattern := fmt.Sprintf("%%%s%%", f.Search)
		for _, col := range searchColumns {
			conditions = append(conditions, sq.Expr(fmt.Sprintf("%s ILIKE ?", col), pattern))
		}
		builder = builder.Where(sq.Or(conditions))
	}

	for field, direction := range f.Sort {
		column, ok := allowedSort[field]
		if !ok {
			continue
		}
		if direction == "asc" {
			builder = builder.OrderBy(column + " ASC")
		} else {
			builder = builder.OrderBy(column + " DESC")
		}
	}

	return builder
}

// applyListConditions — те же фильтры и поиск для COUNT-запроса,
// без сортировки и пагинации.
func applyListConditions(builder sq.SelectBuilder, f types.Filter, allowedFilter map[string]string, searchColumns []string) sq.SelectBuilder {
	return applyListFilter(builder, f, allowedFilter, searchColumns, nil)
}
