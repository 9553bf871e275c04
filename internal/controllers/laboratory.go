package controllers

import (
	"net/http"

	"labstock/internal/dto"
	"labstock/internal/services"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/filestorage"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LaboratoryController struct {
	laboratoryService services.LaboratoryServiceInterface
	fileStorage       filestorage.FileStorageInterface
	logger            *zap.Logger
}

func NewLaboratoryController(
	laboratoryService services.LaboratoryServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *LaboratoryController {
	return &LaboratoryController{laboratoryService: laboratoryService, fileStorage: fileStorage, logger: logger}
}

func (c *LaboratoryController) GetLaboratories(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.laboratoryService.GetLaboratories(ctx.Request().Context(), filter)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить список лабораторий")
	}

	return utils.SuccessResponse(ctx, res, "Список лабораторий успешно получен", http.StatusOK, total)
}

func (c *LaboratoryController) FindLaboratory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.laboratoryService.FindLaboratory(ctx.Request().Context(), id)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось найти лабораторию")
	}

	return utils.SuccessResponse(ctx, res, "Лаборатория успешно найдена", http.StatusOK)
}

func (c *LaboratoryController) CreateLaboratory(ctx echo.Context) error {
	var payload dto.CreateLaboratoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.laboratoryService.CreateLaboratory(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось создать лабораторию")
	}

	return utils.SuccessResponse(ctx, res, "Лаборатория успешно создана", http.StatusCreated)
}

func (c *LaboratoryController) UpdateLaboratory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateLaboratoryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.laboratoryService.UpdateLaboratory(ctx.Request().Context(), id, payload, nil)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить лабораторию")
	}

	return utils.SuccessResponse(ctx, res, "Лаборатория успешно обновлена", http.StatusOK)
}

// UploadGallery принимает multipart-файл в поле gallery.
func (c *LaboratoryController) UploadGallery(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	path, err := saveUploadedFile(ctx, c.fileStorage, "gallery", "laboratories")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.laboratoryService.UploadGallery(ctx.Request().Context(), id, path)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить изображение лаборатории")
	}

	return utils.SuccessResponse(ctx, res, "Изображение лаборатории успешно обновлено", http.StatusOK)
}

func (c *LaboratoryController) DeleteLaboratory(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.laboratoryService.DeleteLaboratory(ctx.Request().Context(), id); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось удалить лабораторию")
	}

	return utils.SuccessResponse(ctx, nil, "Лаборатория успешно удалена", http.StatusOK)
}
