package services

import (
	"context"
	"errors"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/repositories"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"

	"go.uber.org/zap"
)

type ItemServiceInterface interface {
	GetItems(ctx context.Context, filter types.Filter) ([]dto.ItemDTO, uint64, error)
	FindItem(ctx context.Context, id uint64) (*dto.ItemDTO, error)
	CreateItem(ctx context.Context, payload dto.CreateItemDTO) (*dto.ItemDTO, error)
	UpdateItem(ctx context.Context, id uint64, payload dto.UpdateItemDTO) (*dto.ItemDTO, error)
	DeleteItem(ctx context.Context, id uint64) error
}

type ItemService struct {
	itemRepo repositories.ItemRepositoryInterface
	logger   *zap.Logger
}

func NewItemService(itemRepo repositories.ItemRepositoryInterface, logger *zap.Logger) ItemServiceInterface {
	return &ItemService{itemRepo: itemRepo, logger: logger}
}

func (s *ItemService) GetItems(ctx context.Context, filter types.Filter) ([]dto.ItemDTO, uint64, error) {
	items, total, err := s.itemRepo.GetItems(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.ItemDTO, 0, len(items))
	for i := range items {
		result = append(result, mapItemToDTO(&items[i]))
	}
	return result, total, nil
}

func (s *ItemService) FindItem(ctx context.Context, id uint64) (*dto.ItemDTO, error) {
	item, err := s.itemRepo.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}
	result := mapItemToDTO(item)
	return &result, nil
}

// CreateItem выделяет инвентарный номер и создаёт единицу. Конфликт номера
// (нарушение UNIQUE на уровне БД) ретраится один раз; клиенту повтор не виден.
func (s *ItemService) CreateItem(ctx context.Context, payload dto.CreateItemDTO) (*dto.ItemDTO, error) {
	item, err := s.itemRepo.CreateItem(ctx, payload)
	if errors.Is(err, apperrors.ErrConflict) {
		s.logger.Warn("Конфликт инвентарного номера, повтор выделения",
			zap.Uint64("equipmentID", payload.EquipmentID))
		item, err = s.itemRepo.CreateItem(ctx, payload)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Выделен инвентарный номер",
		zap.Uint64("equipmentID", item.EquipmentID),
		zap.String("unitID", item.UnitID))

	result := mapItemToDTO(item)
	return &result, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateItemDTO) (*dto.ItemDTO, error) {
	before, err := s.itemRepo.FindItem(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := s.itemRepo.UpdateItem(ctx, id, payload)
	if err != nil {
		return nil, err
	}

	if payload.IsBorrowed != nil && before.IsBorrowed != item.IsBorrowed {
		s.logger.Info("Изменён статус выдачи единицы",
			zap.Uint64("itemID", item.ID),
			zap.String("unitID", item.UnitID),
			zap.Bool("isBorrowed", item.IsBorrowed))
	}

	result := mapItemToDTO(item)
	return &result, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id uint64) error {
	if err := s.itemRepo.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Удалена единица оборудования", zap.Uint64("itemID", id))
	return nil
}

func mapItemToDTO(item *entities.EquipmentItem) dto.ItemDTO {
	return dto.ItemDTO{
		ID:          item.ID,
		EquipmentID: item.EquipmentID,
		UnitID:      item.UnitID,
		Condition:   item.Condition,
		IsBorrowed:  item.IsBorrowed,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
