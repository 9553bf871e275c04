package entities

import "labstock/pkg/types"

type Equipment struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Condition    string  `json:"condition"`
	Image        *string `json:"image"`
	LaboratoryID uint64  `json:"laboratory_id"`

	// Производные значения: всегда пересчитываются из живого набора единиц,
	// никогда не хранятся.
	ItemsTotal     uint64 `json:"items_total"`
	ItemsAvailable uint64 `json:"items_available"`

	types.BaseEntity

	// Связанные данные (не колонки таблицы)
	Laboratory *Laboratory `json:"-"`
	Categories []Category  `json:"-"`
}
