package controllers

import (
	"net/http"
	"strings"

	"labstock/internal/dto"
	"labstock/internal/services"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/filestorage"
	"labstock/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	fileStorage      filestorage.FileStorageInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{equipmentService: equipmentService, fileStorage: fileStorage, logger: logger}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить список оборудования")
	}

	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось найти оборудование")
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

// CreateEquipment принимает multipart-форму: текстовые поля, category_ids
// (многократное поле или список через запятую) и необязательный файл image.
func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных формы", err, nil),
			c.logger)
	}

	categoryIDs, _, err := parseCategoryIDs(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	payload.CategoryIDs = categoryIDs

	if path, ok, err := saveOptionalFile(ctx, c.fileStorage, "image", "equipment"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	} else if ok {
		payload.Image = &path
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось создать оборудование")
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных формы", err, nil),
			c.logger)
	}

	categoryIDs, provided, err := parseCategoryIDs(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if provided {
		payload.CategoryIDs = categoryIDs
	}

	if path, ok, err := saveOptionalFile(ctx, c.fileStorage, "image", "equipment"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	} else if ok {
		payload.Image = &path
	}

	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить оборудование")
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось удалить оборудование")
	}

	return utils.SuccessResponse(ctx, nil, "Оборудование и все его единицы успешно удалены", http.StatusOK)
}

// parseCategoryIDs собирает id категорий из формы. Второй результат — было ли
// поле передано вообще: пустое значение снимает все категории, отсутствие
// поля оставляет их без изменений.
func parseCategoryIDs(ctx echo.Context) ([]uint64, bool, error) {
	params, err := ctx.FormParams()
	if err != nil {
		return nil, false, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных формы", err, nil)
	}

	var strs []string
	provided := false
	if arr, ok := params["category_ids[]"]; ok {
		provided = true
		strs = arr
	} else if arr, ok := params["category_ids"]; ok {
		provided = true
		for _, v := range arr {
			if v == "" {
				continue
			}
			strs = append(strs, strings.Split(v, ",")...)
		}
	}
	if !provided {
		return nil, false, nil
	}

	ids, err := utils.ParseUint64Slice(strs)
	if err != nil {
		return nil, true, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат списка категорий", err, nil)
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, true, nil
}

// saveOptionalFile сохраняет файл, если он есть в форме; отсутствие файла —
// не ошибка.
func saveOptionalFile(ctx echo.Context, storage filestorage.FileStorageInterface, field, prefix string) (string, bool, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", false, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", false, apperrors.NewHttpError(http.StatusInternalServerError,
			"Не удалось прочитать загруженный файл", err, nil)
	}
	defer src.Close()

	path, err := storage.Save(src, fileHeader.Filename, prefix)
	if err != nil {
		return "", false, apperrors.NewHttpError(http.StatusInternalServerError,
			"Не удалось сохранить файл", err, nil)
	}
	return path, true, nil
}
