package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var defaultCategories = []string{
	"Микроскопия",
	"Измерительные приборы",
	"Стеклянная посуда",
	"Электроника",
	"Химические реактивы",
	"Компьютерная техника",
}

func seedCategories(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение категорий...")

	for _, name := range defaultCategories {
		_, err := db.Exec(ctx,
			"INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name)
		if err != nil {
			return fmt.Errorf("не удалось вставить категорию '%s': %w", name, err)
		}
	}
	return nil
}
