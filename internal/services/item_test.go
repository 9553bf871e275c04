package services

import (
	"context"
	"fmt"
	"testing"

	"labstock/internal/dto"
	"labstock/internal/entities"
	"labstock/internal/unitid"
	apperrors "labstock/pkg/errors"
	"labstock/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeItemRepo имитирует выделение номеров в памяти; первые failFirst вызовов
// CreateItem возвращают ErrConflict.
type fakeItemRepo struct {
	failFirst int
	calls     int
	nextSeq   uint64
	items     map[uint64]*entities.EquipmentItem
	nextID    uint64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint64]*entities.EquipmentItem)}
}

func (f *fakeItemRepo) GetItems(ctx context.Context, filter types.Filter) ([]entities.EquipmentItem, uint64, error) {
	result := make([]entities.EquipmentItem, 0, len(f.items))
	for _, item := range f.items {
		result = append(result, *item)
	}
	return result, uint64(len(result)), nil
}

func (f *fakeItemRepo) FindItem(ctx context.Context, id uint64) (*entities.EquipmentItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) CreateItem(ctx context.Context, payload dto.CreateItemDTO) (*entities.EquipmentItem, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return nil, fmt.Errorf("дубликат: %w", apperrors.ErrConflict)
	}

	f.nextSeq++
	f.nextID++
	item := &entities.EquipmentItem{
		ID:          f.nextID,
		EquipmentID: payload.EquipmentID,
		SequenceNo:  f.nextSeq,
		UnitID:      unitid.Format(payload.EquipmentID, f.nextSeq),
		Condition:   payload.Condition,
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) UpdateItem(ctx context.Context, id uint64, payload dto.UpdateItemDTO) (*entities.EquipmentItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.Condition != nil {
		item.Condition = *payload.Condition
	}
	if payload.IsBorrowed != nil {
		item.IsBorrowed = *payload.IsBorrowed
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepo) DeleteItem(ctx context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func TestItemService_CreateItem_RetriesOnceOnConflict(t *testing.T) {
	repo := newFakeItemRepo()
	repo.failFirst = 1
	svc := NewItemService(repo, zap.NewNop())

	item, err := svc.CreateItem(context.Background(), dto.CreateItemDTO{
		EquipmentID: 7,
		Condition:   "New",
	})
	require.NoError(t, err)
	assert.Equal(t, "070001", item.UnitID)
	assert.Equal(t, 2, repo.calls, "после конфликта должен быть ровно один повтор")
}

func TestItemService_CreateItem_SecondConflictIsReturned(t *testing.T) {
	repo := newFakeItemRepo()
	repo.failFirst = 2
	svc := NewItemService(repo, zap.NewNop())

	_, err := svc.CreateItem(context.Background(), dto.CreateItemDTO{
		EquipmentID: 7,
		Condition:   "New",
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, 2, repo.calls)
}

func TestItemService_UpdateItem_KeepsUnitID(t *testing.T) {
	repo := newFakeItemRepo()
	svc := NewItemService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, dto.CreateItemDTO{EquipmentID: 7, Condition: "New"})
	require.NoError(t, err)

	borrowed := true
	updated, err := svc.UpdateItem(ctx, created.ID, dto.UpdateItemDTO{IsBorrowed: &borrowed})
	require.NoError(t, err)
	assert.Equal(t, created.UnitID, updated.UnitID)
	assert.True(t, updated.IsBorrowed)
}

func TestItemService_FindItem_NotFound(t *testing.T) {
	svc := NewItemService(newFakeItemRepo(), zap.NewNop())

	_, err := svc.FindItem(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
