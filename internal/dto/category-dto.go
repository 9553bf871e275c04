package dto

type CreateCategoryDTO struct {
	Name string `json:"name" validate:"required"`
}

type UpdateCategoryDTO struct {
	Name string `json:"name" validate:"required"`
}

type CategoryDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ShortCategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
