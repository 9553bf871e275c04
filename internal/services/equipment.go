package services

import (
	"context"
	"errors"
	"net/http"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/repositories"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/filestorage"
	"labstock/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	laboratoryRepo repositories.LaboratoryRepositoryInterface
	txManager      repositories.TxManagerInterface
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	laboratoryRepo repositories.LaboratoryRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		laboratoryRepo: laboratoryRepo,
		txManager:      txManager,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint64, 0, len(list))
	for i := range list {
		ids = append(ids, list[i].ID)
	}
	categories, err := s.equipmentRepo.GetCategoriesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		list[i].Categories = categories[list[i].ID]
		result = append(result, mapEquipmentToDTO(&list[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	eq, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	categories, err := s.equipmentRepo.GetCategoriesFor(ctx, []uint64{id})
	if err != nil {
		return nil, err
	}
	eq.Categories = categories[id]

	result := mapEquipmentToDTO(eq)
	return &result, nil
}

// CreateEquipment создаёт запись оборудования и связи с категориями в одной
// транзакции. Единицы (equipment_items) заводятся отдельными запросами.
func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if _, err := s.laboratoryRepo.FindLaboratory(ctx, payload.LaboratoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Указанная лаборатория не найдена", err, nil)
		}
		return nil, err
	}

	var createdID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.equipmentRepo.CreateEquipment(ctx, tx, payload)
		if err != nil {
			return err
		}
		createdID = id

		if len(payload.CategoryIDs) > 0 {
			return s.equipmentRepo.ReplaceCategories(ctx, tx, id, payload.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Указана несуществующая категория", err, nil)
		}
		return nil, err
	}

	s.logger.Info("Создано оборудование", zap.Uint64("equipmentID", createdID), zap.String("name", payload.Name))
	return s.FindEquipment(ctx, createdID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	existing, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.LaboratoryID != nil {
		if _, err := s.laboratoryRepo.FindLaboratory(ctx, *payload.LaboratoryID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewHttpError(http.StatusBadRequest, "Указанная лаборатория не найдена", err, nil)
			}
			return nil, err
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.equipmentRepo.UpdateEquipment(ctx, tx, id, payload); err != nil {
			return err
		}
		// nil — поле не передавалось; пустой срез — снять все категории.
		if payload.CategoryIDs != nil {
			return s.equipmentRepo.ReplaceCategories(ctx, tx, id, payload.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrBadRequest) {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Указана несуществующая категория", err, nil)
		}
		return nil, err
	}

	if payload.Image != nil && existing.Image != nil && *existing.Image != *payload.Image {
		if err := s.fileStorage.Delete(*existing.Image); err != nil {
			s.logger.Warn("Не удалось удалить старое изображение оборудования",
				zap.Uint64("equipmentID", id), zap.Error(err))
		}
	}

	return s.FindEquipment(ctx, id)
}

// DeleteEquipment удаляет оборудование вместе со всеми единицами (каскад на
// уровне схемы) и его изображением на диске.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	existing, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	if existing.Image != nil {
		if err := s.fileStorage.Delete(*existing.Image); err != nil {
			s.logger.Warn("Не удалось удалить изображение оборудования",
				zap.Uint64("equipmentID", id), zap.Error(err))
		}
	}

	s.logger.Info("Удалено оборудование вместе с единицами", zap.Uint64("equipmentID", id))
	return nil
}

func mapEquipmentToDTO(eq *entities.Equipment) dto.EquipmentDTO {
	result := dto.EquipmentDTO{
		ID:             eq.ID,
		Name:           eq.Name,
		Description:    eq.Description,
		Condition:      eq.Condition,
		Image:          eq.Image,
		ItemsTotal:     eq.ItemsTotal,
		ItemsAvailable: eq.ItemsAvailable,
		CreatedAt:      eq.CreatedAt,
		UpdatedAt:      eq.UpdatedAt,
	}
	if eq.Laboratory != nil {
		result.Laboratory = dto.ShortLaboratoryDTO{ID: eq.Laboratory.ID, Name: eq.Laboratory.Name}
	}
	result.Categories = make([]dto.ShortCategoryDTO, 0, len(eq.Categories))
	for _, c := range eq.Categories {
		result.Categories = append(result.Categories, dto.ShortCategoryDTO{ID: c.ID, Name: c.Name})
	}
	return result
}
