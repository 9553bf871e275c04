package dto

// InventoryReportRowDTO — строка сводного отчёта по инвентарю:
// по каждому оборудованию счётчики единиц, пересчитанные на момент запроса.
type InventoryReportRowDTO struct {
	EquipmentID    uint64 `json:"equipment_id"`
	EquipmentName  string `json:"equipment_name"`
	LaboratoryName string `json:"laboratory_name"`
	Condition      string `json:"condition"`
	ItemsTotal     uint64 `json:"items_total"`
	ItemsAvailable uint64 `json:"items_available"`
	ItemsBorrowed  uint64 `json:"items_borrowed"`
	ItemsDamaged   uint64 `json:"items_damaged"`
}
