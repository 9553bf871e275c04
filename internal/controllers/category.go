package controllers

import (
	"net/http"

	"labstock/internal/dto"
	"labstock/internal/services"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
	logger          *zap.Logger
}

func NewCategoryController(categoryService services.CategoryServiceInterface, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: categoryService, logger: logger}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.categoryService.GetCategories(ctx.Request().Context(), filter)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить список категорий")
	}

	return utils.SuccessResponse(ctx, res, "Список категорий успешно получен", http.StatusOK, total)
}

func (c *CategoryController) FindCategory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.FindCategory(ctx.Request().Context(), id)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось найти категорию")
	}

	return utils.SuccessResponse(ctx, res, "Категория успешно найдена", http.StatusOK)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось создать категорию")
	}

	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}

func (c *CategoryController) UpdateCategory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCategoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.UpdateCategory(ctx.Request().Context(), id, payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить категорию")
	}

	return utils.SuccessResponse(ctx, res, "Категория успешно обновлена", http.StatusOK)
}

func (c *CategoryController) DeleteCategory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.categoryService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось удалить категорию")
	}

	return utils.SuccessResponse(ctx, nil, "Категория успешно удалена", http.StatusOK)
}
