package main

import (
	"flag"
	"log"

	"labstock/pkg/config"
	"labstock/pkg/database/postgresql"
	"labstock/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "Наполнить базовые справочники (категории)")
	runAdmin := flag.Bool("admin", false, "Создать администратора")
	runDemo := flag.Bool("demo", false, "Наполнить демонстрационный инвентарь")
	runAll := flag.Bool("all", false, "Запустить все сидеры")
	flag.Parse()

	if !*runCore && !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCore {
		seeders.SeedCoreDictionaries(dbPool)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemoInventory(dbPool)
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
}
