package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/repositories"
	"labstock/pkg/config"
	"labstock/pkg/constants"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/service"
	"labstock/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, accessToken string) error
	GetUserByID(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	logger    *zap.Logger
	cfg       *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		logger:    logger,
		cfg:       cfg,
	}
}

// Register создаёт учётную запись с ролью user и сразу выдаёт пару токенов.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, dto.CreateUserDTO{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     constants.RoleUser,
	}, hashed, nil)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Пользователь с таким email уже существует", err, nil)
		}
		return nil, err
	}

	s.logger.Info("Зарегистрирован новый пользователь", zap.Uint64("userID", user.ID))
	return s.issueTokens(user)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	lockoutKey := fmt.Sprintf("login_attempts:%s", payload.Email)
	attemptsStr, _ := s.cacheRepo.Get(ctx, lockoutKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		s.logger.Warn("Учётная запись временно заблокирована", zap.String("email", payload.Email))
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток входа. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			nil, nil,
		)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		s.registerFailedAttempt(ctx, lockoutKey)
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, "Неверный email или пароль", apperrors.ErrInvalidCredentials, nil)
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, lockoutKey)
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, "Неверный email или пароль", apperrors.ErrInvalidCredentials, nil)
	}

	if !user.IsActive {
		s.logger.Warn("Попытка входа в деактивированную учётную запись", zap.Uint64("userID", user.ID))
		return nil, apperrors.NewHttpError(http.StatusForbidden, "Учётная запись деактивирована. Обратитесь к администратору.", apperrors.ErrAccountInactive, nil)
	}

	_ = s.cacheRepo.Del(ctx, lockoutKey)

	return s.issueTokens(user)
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, lockoutKey string) {
	if n, err := s.cacheRepo.Incr(ctx, lockoutKey); err == nil && n == 1 {
		_, _ = s.cacheRepo.Expire(ctx, lockoutKey, s.cfg.LockoutDuration)
	}
}

func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, err.Error(), err, nil)
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrTokenIsNotRefresh.Error(), nil, nil)
	}

	revoked, err := s.IsTokenRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrTokenRevoked.Error(), nil, nil)
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err, nil)
	}
	if !user.IsActive {
		return nil, apperrors.NewHttpError(http.StatusForbidden, "Учётная запись деактивирована", apperrors.ErrAccountInactive, nil)
	}

	// Использованный refresh-токен отзываем: ротация одноразовая.
	_ = s.revokeToken(ctx, refreshToken, s.jwtSvc.GetRefreshTokenTTL())

	return s.issueTokens(user)
}

// Logout помещает access-токен в денилист до конца его срока жизни.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	return s.revokeToken(ctx, accessToken, s.jwtSvc.GetAccessTokenTTL())
}

// IsTokenRevoked: отсутствие ключа означает «не отзывался», любая другая
// ошибка кеша возвращается вызывающему — при недоступном Redis токен не
// считается действительным.
func (s *AuthService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	_, err := s.cacheRepo.Get(ctx, denylistKey(token))
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) revokeToken(ctx context.Context, token string, ttl time.Duration) error {
	return s.cacheRepo.Set(ctx, denylistKey(token), "revoked", ttl)
}

func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token_denylist:" + hex.EncodeToString(sum[:])
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := mapUserToDTO(user)
	return &result, nil
}

func (s *AuthService) issueTokens(user *entities.User) (*dto.TokenPairDTO, error) {
	access, refresh, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         mapUserToDTO(user),
	}, nil
}
