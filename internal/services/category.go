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

	"go.uber.org/zap"
)

type CategoryServiceInterface interface {
	GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error)
	FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *zap.Logger) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

func (s *CategoryService) GetCategories(ctx context.Context, filter types.Filter) ([]dto.CategoryDTO, uint64, error) {
	categories, total, err := s.categoryRepo.GetCategories(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.CategoryDTO, 0, len(categories))
	for i := range categories {
		result = append(result, mapCategoryToDTO(&categories[i]))
	}
	return result, total, nil
}

func (s *CategoryService) FindCategory(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.FindCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	result := mapCategoryToDTO(category)
	return &result, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Категория с таким названием уже существует", err, nil)
		}
		return nil, err
	}

	s.logger.Info("Создана категория", zap.Uint64("categoryID", category.ID), zap.String("name", category.Name))
	result := mapCategoryToDTO(category)
	return &result, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.UpdateCategory(ctx, id, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Категория с таким названием уже существует", err, nil)
		}
		return nil, err
	}

	result := mapCategoryToDTO(category)
	return &result, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Удалена категория", zap.Uint64("categoryID", id))
	return nil
}

func mapCategoryToDTO(category *entities.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
