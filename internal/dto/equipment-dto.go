package dto

type CreateEquipmentDTO struct {
	Name         string   `form:"name" validate:"required"`
	Description  string   `form:"description" validate:"omitempty"`
	Condition    string   `form:"condition" validate:"required,condition"`
	LaboratoryID uint64   `form:"laboratory_id" validate:"required"`
	CategoryIDs  []uint64 `form:"-" validate:"omitempty"`

	// Относительный путь к изображению; заполняется контроллером после
	// сохранения файла, с формы напрямую не принимается.
	Image *string `form:"-"`
}

type UpdateEquipmentDTO struct {
	Name         *string  `form:"name" validate:"omitempty"`
	Description  *string  `form:"description" validate:"omitempty"`
	Condition    *string  `form:"condition" validate:"omitempty,condition"`
	LaboratoryID *uint64  `form:"laboratory_id" validate:"omitempty"`
	CategoryIDs  []uint64 `form:"-" validate:"omitempty"`
	Image        *string  `form:"-"`
}

type EquipmentDTO struct {
	ID          uint64             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Condition   string             `json:"condition"`
	Image       *string            `json:"image"`
	Laboratory  ShortLaboratoryDTO `json:"laboratory"`
	Categories  []ShortCategoryDTO `json:"categories"`

	// Производные счётчики: пересчитываются из живого набора единиц при каждом запросе.
	ItemsTotal     uint64 `json:"items_total"`
	ItemsAvailable uint64 `json:"items_available"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortEquipmentDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
