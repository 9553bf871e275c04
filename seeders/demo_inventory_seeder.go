package seeders

import (
	"context"
	"fmt"
	"log"

	"labstock/internal/unitid"
	"labstock/pkg/constants"

	"github.com/jackc/pgx/v5/pgxpool"
)

type demoEquipment struct {
	name      string
	condition string
	units     int
}

var demoLaboratories = map[string][]demoEquipment{
	"Лаборатория физики": {
		{"Осциллограф", constants.ConditionNew, 3},
		{"Мультиметр", constants.ConditionUsed, 5},
	},
	"Лаборатория биологии": {
		{"Микроскоп", constants.ConditionNew, 4},
		{"Центрифуга", constants.ConditionUsed, 2},
	},
}

func seedDemoInventory(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение демо-инвентаря...")

	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM laboratories").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Println("    - Лаборатории уже существуют. Пропускаем.")
		return nil
	}

	for labName, equipmentList := range demoLaboratories {
		var labID uint64
		err := db.QueryRow(ctx, `
			INSERT INTO laboratories (name, location, description)
			VALUES ($1, 'Главный корпус', '')
			RETURNING id`, labName,
		).Scan(&labID)
		if err != nil {
			return fmt.Errorf("не удалось создать лабораторию '%s': %w", labName, err)
		}

		for _, eq := range equipmentList {
			var equipmentID uint64
			err := db.QueryRow(ctx, `
				INSERT INTO equipment (name, condition, laboratory_id)
				VALUES ($1, $2, $3)
				RETURNING id`, eq.name, eq.condition, labID,
			).Scan(&equipmentID)
			if err != nil {
				return fmt.Errorf("не удалось создать оборудование '%s': %w", eq.name, err)
			}

			for seq := 1; seq <= eq.units; seq++ {
				_, err := db.Exec(ctx, `
					INSERT INTO equipment_items (equipment_id, sequence_no, unit_id, condition)
					VALUES ($1, $2, $3, $4)`,
					equipmentID, seq, unitid.Format(equipmentID, uint64(seq)), eq.condition,
				)
				if err != nil {
					return fmt.Errorf("не удалось создать единицу для '%s': %w", eq.name, err)
				}
			}
		}
	}
	return nil
}
