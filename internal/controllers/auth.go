package controllers

import (
	"net/http"
	"strings"

	"labstock/internal/dto"
	"labstock/internal/services"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var payload dto.RegisterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Register(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось зарегистрировать пользователя")
	}

	return utils.SuccessResponse(ctx, tokens, "Регистрация прошла успешно", http.StatusCreated)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось выполнить вход")
	}

	return utils.SuccessResponse(ctx, tokens, "Вход выполнен успешно", http.StatusOK)
}

func (c *AuthController) RefreshToken(ctx echo.Context) error {
	var payload dto.RefreshTokenDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	tokens, err := c.authService.RefreshTokens(ctx.Request().Context(), payload.RefreshToken)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить токены")
	}

	return utils.SuccessResponse(ctx, tokens, "Токены успешно обновлены", http.StatusOK)
}

func (c *AuthController) Logout(ctx echo.Context) error {
	token, err := bearerToken(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusUnauthorized, err.Error(), err, nil),
			c.logger)
	}

	if err := c.authService.Logout(ctx.Request().Context(), token); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось выполнить выход")
	}

	return utils.SuccessResponse(ctx, nil, "Выход выполнен успешно", http.StatusOK)
}

// GetCurrentUser возвращает профиль владельца токена.
func (c *AuthController) GetCurrentUser(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err, nil),
			c.logger)
	}

	user, err := c.authService.GetUserByID(ctx.Request().Context(), userID)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить профиль")
	}

	return utils.SuccessResponse(ctx, user, "Профиль успешно получен", http.StatusOK)
}

func bearerToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return parts[1], nil
}
