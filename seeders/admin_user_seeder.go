package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"labstock/pkg/constants"
	"labstock/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание пользователя 'Admin'...")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@labstock.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin12345"
	}

	var userID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == nil {
		log.Println("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("не удалось хешировать пароль администратора: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (name, email, password, role, is_active)
		VALUES ('Администратор', $1, $2, $3, TRUE)`,
		email, hashedPassword, constants.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	log.Printf("    - Администратор создан: %s", email)
	return nil
}
