package services

import (
	"context"
	"errors"
	"net/http"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/repositories"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"
	"labstock/pkg/utils"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, avatar *string) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, avatar *string) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, mapUserToDTO(&users[i]))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, id)
	if err != nil {
		return nil, err
	}
	result := mapUserToDTO(user)
	return &result, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO, avatar *string) (*dto.UserDTO, error) {
	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, payload, hashed, avatar)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Пользователь с таким email уже существует", err, nil)
		}
		return nil, err
	}

	s.logger.Info("Создан пользователь", zap.Uint64("userID", user.ID), zap.String("role", user.Role))
	result := mapUserToDTO(user)
	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, avatar *string) (*dto.UserDTO, error) {
	var hashed *string
	if payload.Password != nil {
		h, err := utils.HashPassword(*payload.Password)
		if err != nil {
			return nil, err
		}
		hashed = &h
	}

	user, err := s.userRepo.UpdateUser(ctx, id, payload, hashed, avatar)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Пользователь с таким email уже существует", err, nil)
		}
		return nil, err
	}

	result := mapUserToDTO(user)
	return &result, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint64) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Удалён пользователь", zap.Uint64("userID", id))
	return nil
}

func mapUserToDTO(user *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
