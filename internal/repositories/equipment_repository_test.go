package repositories

import (
	"context"
	"testing"

	"labstock/internal/dto"
	"labstock/pkg/constants"
	apperrors "labstock/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Доступное количество — всегда живой пересчёт: любое изменение флага выдачи
// сразу видно в карточке оборудования.
func TestEquipmentRepository_DerivedCountsAreLive(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	seedEquipment(t, testPool, 7)
	equipmentRepo := NewEquipmentRepository(testPool)
	itemRepo := NewItemRepository(testPool)
	ctx := context.Background()

	items := make([]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		item, err := itemRepo.CreateItem(ctx, dto.CreateItemDTO{EquipmentID: 7, Condition: constants.ConditionNew})
		require.NoError(t, err)
		items = append(items, item.ID)
	}

	eq, err := equipmentRepo.FindEquipment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), eq.ItemsTotal)
	assert.Equal(t, uint64(3), eq.ItemsAvailable)

	borrowed := true
	_, err = itemRepo.UpdateItem(ctx, items[0], dto.UpdateItemDTO{IsBorrowed: &borrowed})
	require.NoError(t, err)

	eq, err = equipmentRepo.FindEquipment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), eq.ItemsTotal)
	assert.Equal(t, uint64(2), eq.ItemsAvailable)

	returned := false
	_, err = itemRepo.UpdateItem(ctx, items[0], dto.UpdateItemDTO{IsBorrowed: &returned})
	require.NoError(t, err)

	eq, err = equipmentRepo.FindEquipment(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), eq.ItemsAvailable)
}

func TestEquipmentRepository_ReplaceCategories(t *testing.T) {
	require.NotNil(t, testPool)
	cleanupTables(t, testPool)
	seedEquipment(t, testPool, 7)
	equipmentRepo := NewEquipmentRepository(testPool)
	ctx := context.Background()

	var firstCat, secondCat uint64
	require.NoError(t, testPool.QueryRow(ctx,
		"INSERT INTO categories (name) VALUES ('Электроника') RETURNING id").Scan(&firstCat))
	require.NoError(t, testPool.QueryRow(ctx,
		"INSERT INTO categories (name) VALUES ('Измерительные приборы') RETURNING id").Scan(&secondCat))

	err := WithTx(ctx, testPool, func(tx pgx.Tx) error {
		return equipmentRepo.ReplaceCategories(ctx, tx, 7, []uint64{firstCat, secondCat})
	})
	require.NoError(t, err)

	categories, err := equipmentRepo.GetCategoriesFor(ctx, []uint64{7})
	require.NoError(t, err)
	require.Len(t, categories[7], 2)

	// Повторная привязка заменяет набор целиком.
	err = WithTx(ctx, testPool, func(tx pgx.Tx) error {
		return equipmentRepo.ReplaceCategories(ctx, tx, 7, []uint64{secondCat})
	})
	require.NoError(t, err)

	categories, err = equipmentRepo.GetCategoriesFor(ctx, []uint64{7})
	require.NoError(t, err)
	require.Len(t, categories[7], 1)
	assert.Equal(t, secondCat, categories[7][0].ID)
}

// Ссылка на несуществующую категорию — ошибка запроса клиента, а не 500.
func TestEquipmentRepository_ReplaceCategories_UnknownCategory(t *testing.T) {
	require.NotNil(t, testPool)
	cleanupTables(t, testPool)
	seedEquipment(t, testPool, 7)
	equipmentRepo := NewEquipmentRepository(testPool)
	ctx := context.Background()

	err := WithTx(ctx, testPool, func(tx pgx.Tx) error {
		return equipmentRepo.ReplaceCategories(ctx, tx, 7, []uint64{999})
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
}
