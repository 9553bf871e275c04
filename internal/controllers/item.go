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

type ItemController struct {
	itemService services.ItemServiceInterface
	logger      *zap.Logger
}

func NewItemController(itemService services.ItemServiceInterface, logger *zap.Logger) *ItemController {
	return &ItemController{itemService: itemService, logger: logger}
}

func (c *ItemController) GetItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.itemService.GetItems(ctx.Request().Context(), filter)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить список единиц оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Список единиц оборудования успешно получен", http.StatusOK, total)
}

func (c *ItemController) FindItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.itemService.FindItem(ctx.Request().Context(), id)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось найти единицу оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Единица оборудования успешно найдена", http.StatusOK)
}

// CreateItem создаёт единицу; инвентарный номер выделяется сервером,
// с клиента не принимается.
func (c *ItemController) CreateItem(ctx echo.Context) error {
	var payload dto.CreateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.itemService.CreateItem(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось создать единицу оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Единица оборудования успешно создана", http.StatusCreated)
}

func (c *ItemController) UpdateItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.itemService.UpdateItem(ctx.Request().Context(), id, payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить единицу оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Единица оборудования успешно обновлена", http.StatusOK)
}

func (c *ItemController) DeleteItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.itemService.DeleteItem(ctx.Request().Context(), id); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось удалить единицу оборудования")
	}

	return utils.SuccessResponse(ctx, nil, "Единица оборудования успешно удалена", http.StatusOK)
}
