package entities

import "labstock/pkg/types"

type User struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"-"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
	Avatar   *string `json:"avatar"`

	types.BaseEntity
}
