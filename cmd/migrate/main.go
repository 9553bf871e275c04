// Утилита миграций: go run ./cmd/migrate -command up
package main

import (
	"flag"
	"log"

	"labstock/migrations"
	"labstock/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	command := flag.String("command", "up", "команда goose: up, down, status, version")
	flag.Parse()

	cfg := config.New()

	db, err := goose.OpenDBWithDriver("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("не удалось подключиться к базе данных: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("не удалось задать диалект: %v", err)
	}

	if err := goose.Run(*command, db, "."); err != nil {
		log.Fatalf("миграция завершилась с ошибкой: %v", err)
	}
}
