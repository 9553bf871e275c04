package middleware

import (
	"context"
	"net/http"
	"strings"

	"labstock/pkg/contextkeys"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/service"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TokenRevocationChecker проверяет, не был ли токен отозван (logout).
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	revocation TokenRevocationChecker
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, revocation TokenRevocationChecker, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		revocation: revocation,
		logger:     logger,
	}
}

// Auth извлекает bearer-токен, валидирует его и кладёт UserID и роль в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrEmptyAuthHeader.Error(), nil, nil), m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrInvalidAuthHeader.Error(), nil, nil), m.logger)
		}

		tokenString := parts[1]

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, err.Error(), nil, nil), m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh-токеном")
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrTokenIsNotAccess.Error(), nil, nil), m.logger)
		}

		if m.revocation != nil {
			revoked, err := m.revocation.IsTokenRevoked(c.Request().Context(), tokenString)
			if err != nil {
				m.logger.Error("AuthMiddleware: Ошибка проверки отзыва токена", zap.Error(err))
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusServiceUnavailable, "Сервис авторизации временно недоступен", err, nil), m.logger)
			}
			if revoked {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrTokenRevoked.Error(), nil, nil), m.logger)
			}
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.RoleKey, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRoles пропускает запрос только для перечисленных ролей.
func (m *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), err, nil), m.logger)
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			m.logger.Warn("AuthMiddleware: Недостаточно прав", zap.String("role", role))
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, apperrors.ErrForbidden.Error(), nil, map[string]interface{}{"role": role}), m.logger)
		}
	}
}
