package entities

import "labstock/pkg/types"

type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`

	types.BaseEntity
}
