package dto

import "github.com/aarondl/null/v8"

type CreateLaboratoryDTO struct {
	Name        string  `json:"name" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Description string  `json:"description" validate:"omitempty"`
	CustodianID *uint64 `json:"custodian_id" validate:"omitempty"`
	IsActive    *bool   `json:"is_active" validate:"omitempty"`
}

// UpdateLaboratoryDTO использует null.Int64 для custodian_id: JSON null
// означает «снять ответственного», число — назначить. Консоль передаёт
// это поле при каждом редактировании лаборатории.
type UpdateLaboratoryDTO struct {
	Name        *string    `json:"name" validate:"omitempty"`
	Location    *string    `json:"location" validate:"omitempty"`
	Description *string    `json:"description" validate:"omitempty"`
	CustodianID null.Int64 `json:"custodian_id" validate:"omitempty"`
	IsActive    *bool      `json:"is_active" validate:"omitempty"`
}

type LaboratoryDTO struct {
	ID          uint64        `json:"id"`
	Name        string        `json:"name"`
	Location    string        `json:"location"`
	Description string        `json:"description"`
	Custodian   *ShortUserDTO `json:"custodian"`
	IsActive    bool          `json:"is_active"`
	Gallery     *string       `json:"gallery"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

type ShortLaboratoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
