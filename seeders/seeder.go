package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCoreDictionaries наполняет базовые справочники без зависимостей.
func SeedCoreDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения базовых справочников...")

	if err := seedCategories(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения Категорий: %v", err)
	}

	log.Println("✅ Наполнение базовых справочников завершено!")
}

// SeedAdmin создаёт учётную запись администратора.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск создания администратора...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}

	log.Println("✅ Администратор создан!")
}

// SeedDemoInventory наполняет базу демонстрационными лабораториями и
// оборудованием.
func SeedDemoInventory(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения демо-инвентаря...")

	if err := seedDemoInventory(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения демо-инвентаря: %v", err)
	}

	log.Println("✅ Демо-инвентарь создан!")
}
