package entities

import "labstock/pkg/types"

// EquipmentItem — одна физическая единица оборудования.
// UnitID присваивается при создании и больше никогда не меняется;
// SequenceNo — порядковый номер внутри своего оборудования, по нему
// построено ограничение UNIQUE(equipment_id, sequence_no).
type EquipmentItem struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	SequenceNo  uint64 `json:"-"`
	UnitID      string `json:"unit_id"`
	Condition   string `json:"condition"`
	IsBorrowed  bool   `json:"isBorrowed"`

	types.BaseEntity
}
