package services

import (
	"context"
	"errors"
	"net/http"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/repositories"
	"labstock/pkg/constants"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/filestorage"
	"labstock/pkg/types"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type LaboratoryServiceInterface interface {
	GetLaboratories(ctx context.Context, filter types.Filter) ([]dto.LaboratoryDTO, uint64, error)
	FindLaboratory(ctx context.Context, id uint64) (*dto.LaboratoryDTO, error)
	CreateLaboratory(ctx context.Context, payload dto.CreateLaboratoryDTO) (*dto.LaboratoryDTO, error)
	UpdateLaboratory(ctx context.Context, id uint64, payload dto.UpdateLaboratoryDTO, gallery *string) (*dto.LaboratoryDTO, error)
	UploadGallery(ctx context.Context, id uint64, gallery string) (*dto.LaboratoryDTO, error)
	DeleteLaboratory(ctx context.Context, id uint64) error
}

type LaboratoryService struct {
	laboratoryRepo repositories.LaboratoryRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewLaboratoryService(
	laboratoryRepo repositories.LaboratoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) LaboratoryServiceInterface {
	return &LaboratoryService{
		laboratoryRepo: laboratoryRepo,
		userRepo:       userRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func (s *LaboratoryService) GetLaboratories(ctx context.Context, filter types.Filter) ([]dto.LaboratoryDTO, uint64, error) {
	labs, total, err := s.laboratoryRepo.GetLaboratories(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.LaboratoryDTO, 0, len(labs))
	for i := range labs {
		result = append(result, mapLaboratoryToDTO(&labs[i]))
	}
	return result, total, nil
}

func (s *LaboratoryService) FindLaboratory(ctx context.Context, id uint64) (*dto.LaboratoryDTO, error) {
	lab, err := s.laboratoryRepo.FindLaboratory(ctx, id)
	if err != nil {
		return nil, err
	}
	result := mapLaboratoryToDTO(lab)
	return &result, nil
}

func (s *LaboratoryService) CreateLaboratory(ctx context.Context, payload dto.CreateLaboratoryDTO) (*dto.LaboratoryDTO, error) {
	if payload.CustodianID != nil {
		if err := s.checkCustodian(ctx, *payload.CustodianID, 0); err != nil {
			return nil, err
		}
	}

	lab, err := s.laboratoryRepo.CreateLaboratory(ctx, payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Этот сотрудник уже назначен ответственным за другую лабораторию", err, nil)
		}
		return nil, err
	}

	s.logger.Info("Создана лаборатория", zap.Uint64("laboratoryID", lab.ID), zap.String("name", lab.Name))
	result := mapLaboratoryToDTO(lab)
	return &result, nil
}

func (s *LaboratoryService) UpdateLaboratory(ctx context.Context, id uint64, payload dto.UpdateLaboratoryDTO, gallery *string) (*dto.LaboratoryDTO, error) {
	if payload.CustodianID.Valid {
		if err := s.checkCustodian(ctx, uint64(payload.CustodianID.Int64), id); err != nil {
			return nil, err
		}
	}

	lab, err := s.laboratoryRepo.UpdateLaboratory(ctx, id, payload, gallery)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewHttpError(http.StatusConflict, "Этот сотрудник уже назначен ответственным за другую лабораторию", err, nil)
		}
		return nil, err
	}

	result := mapLaboratoryToDTO(lab)
	return &result, nil
}

// checkCustodian проверяет, что пользователь существует, активен, имеет роль
// custodian и ещё не закреплён за другой лабораторией. Гонку двух параллельных
// назначений закрывает уникальный индекс по custodian_id, здесь даём понятную
// ошибку до записи.
func (s *LaboratoryService) checkCustodian(ctx context.Context, custodianID, excludeLabID uint64) error {
	user, err := s.userRepo.FindUser(ctx, custodianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewHttpError(http.StatusBadRequest, "Указанный ответственный не найден", err, nil)
		}
		return err
	}
	if user.Role != constants.RoleCustodian && user.Role != constants.RoleAdmin {
		return apperrors.NewHttpError(http.StatusBadRequest, "Ответственным может быть только сотрудник с ролью custodian", nil, nil)
	}
	if !user.IsActive {
		return apperrors.NewHttpError(http.StatusBadRequest, "Нельзя назначить деактивированного сотрудника", nil, nil)
	}

	existing, err := s.laboratoryRepo.FindLaboratoryByCustodian(ctx, custodianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != excludeLabID {
		return apperrors.NewHttpError(http.StatusConflict, "Этот сотрудник уже назначен ответственным за другую лабораторию", apperrors.ErrConflict, nil)
	}
	return nil
}

// UploadGallery заменяет изображение лаборатории, сохраняя текущего
// ответственного (UPDATE пишет custodian_id как есть).
func (s *LaboratoryService) UploadGallery(ctx context.Context, id uint64, gallery string) (*dto.LaboratoryDTO, error) {
	existing, err := s.laboratoryRepo.FindLaboratory(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := dto.UpdateLaboratoryDTO{}
	if existing.CustodianID != nil {
		payload.CustodianID = null.Int64From(int64(*existing.CustodianID))
	}

	lab, err := s.laboratoryRepo.UpdateLaboratory(ctx, id, payload, &gallery)
	if err != nil {
		return nil, err
	}

	if existing.Gallery != nil && *existing.Gallery != gallery {
		if err := s.fileStorage.Delete(*existing.Gallery); err != nil {
			s.logger.Warn("Не удалось удалить старое изображение лаборатории",
				zap.Uint64("laboratoryID", id), zap.Error(err))
		}
	}

	result := mapLaboratoryToDTO(lab)
	return &result, nil
}

func (s *LaboratoryService) DeleteLaboratory(ctx context.Context, id uint64) error {
	if err := s.laboratoryRepo.DeleteLaboratory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Удалена лаборатория", zap.Uint64("laboratoryID", id))
	return nil
}

func mapLaboratoryToDTO(lab *entities.Laboratory) dto.LaboratoryDTO {
	result := dto.LaboratoryDTO{
		ID:          lab.ID,
		Name:        lab.Name,
		Location:    lab.Location,
		Description: lab.Description,
		IsActive:    lab.IsActive,
		Gallery:     lab.Gallery,
		CreatedAt:   lab.CreatedAt,
		UpdatedAt:   lab.UpdatedAt,
	}
	if lab.Custodian != nil {
		result.Custodian = &dto.ShortUserDTO{ID: lab.Custodian.ID, Name: lab.Custodian.Name}
	}
	return result
}
