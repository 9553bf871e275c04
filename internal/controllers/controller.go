package controllers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "labstock/pkg/errors"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// parseIDParam читает числовой параметр пути и возвращает готовую HttpError
// при некорректном значении.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный формат ID",
			err,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

// handleServiceError приводит ошибку сервиса к HTTP-ответу: готовые HttpError
// уходят как есть, известные сентинели получают свой статус, остальное — 500
// с переданным сообщением.
func handleServiceError(ctx echo.Context, err error, logger *zap.Logger, fallback string) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return utils.ErrorResponse(ctx, err, logger)
	}

	code := utils.HttpCodeForError(err)
	message := fallback
	if code != http.StatusInternalServerError {
		message = err.Error()
	}
	return utils.ErrorResponse(ctx, apperrors.NewHttpError(code, message, err, nil), logger)
}
