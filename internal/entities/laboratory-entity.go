package entities

import "labstock/pkg/types"

type Laboratory struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	CustodianID *uint64 `json:"custodian_id"`
	IsActive    bool    `json:"is_active"`
	Gallery     *string `json:"gallery"`

	types.BaseEntity

	// Связанные данные (не колонки таблицы)
	Custodian *User `json:"-"`
}
