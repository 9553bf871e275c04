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

type UserController struct {
	userService services.UserServiceInterface
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewUserController(
	userService services.UserServiceInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) *UserController {
	return &UserController{userService: userService, fileStorage: fileStorage, logger: logger}
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.userService.GetUsers(ctx.Request().Context(), filter)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось получить список пользователей")
	}

	return utils.SuccessResponse(ctx, res, "Список пользователей успешно получен", http.StatusOK, total)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.FindUser(ctx.Request().Context(), id)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось найти пользователя")
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно найден", http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.CreateUser(ctx.Request().Context(), payload, nil)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось создать пользователя")
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно создан", http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil),
			c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(ctx.Request().Context(), id, payload, nil)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить пользователя")
	}

	return utils.SuccessResponse(ctx, res, "Пользователь успешно обновлён", http.StatusOK)
}

// UploadAvatar принимает multipart-файл в поле avatar и сохраняет его на диск.
func (c *UserController) UploadAvatar(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	path, err := saveUploadedFile(ctx, c.fileStorage, "avatar", "avatars")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.userService.UpdateUser(ctx.Request().Context(), id, dto.UpdateUserDTO{}, &path)
	if err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось обновить аватар")
	}

	return utils.SuccessResponse(ctx, res, "Аватар успешно обновлён", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.userService.DeleteUser(ctx.Request().Context(), id); err != nil {
		return handleServiceError(ctx, err, c.logger, "Не удалось удалить пользователя")
	}

	return utils.SuccessResponse(ctx, nil, "Пользователь успешно удалён", http.StatusOK)
}

// saveUploadedFile достаёт файл из multipart-формы и кладёт его в хранилище.
// Отсутствие файла — ошибка 400.
func saveUploadedFile(ctx echo.Context, storage filestorage.FileStorageInterface, field, prefix string) (string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusBadRequest,
			"Файл в поле '"+field+"' не найден", err, nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusInternalServerError,
			"Не удалось прочитать загруженный файл", err, nil)
	}
	defer src.Close()

	path, err := storage.Save(src, fileHeader.Filename, prefix)
	if err != nil {
		return "", apperrors.NewHttpError(http.StatusInternalServerError,
			"Не удалось сохранить файл", err, nil)
	}
	return path, nil
}
