package dto

type CreateItemDTO struct {
	EquipmentID uint64 `json:"equipment_id" validate:"required"`
	Condition   string `json:"condition" validate:"required,condition"`
	IsBorrowed  *bool  `json:"isBorrowed" validate:"omitempty"`
}

// UpdateItemDTO намеренно не содержит ни unit_id, ни equipment_id:
// инвентарный номер неизменяем, принадлежность единицы — тоже.
type UpdateItemDTO struct {
	Condition  *string `json:"condition" validate:"omitempty,condition"`
	IsBorrowed *bool   `json:"isBorrowed" validate:"omitempty"`
}

type ItemDTO struct {
	ID          uint64 `json:"id"`
	EquipmentID uint64 `json:"equipment_id"`
	UnitID      string `json:"unit_id"`
	Condition   string `json:"condition"`
	IsBorrowed  bool   `json:"isBorrowed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
