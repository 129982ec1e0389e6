package dto

import "time"

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	PartCode   string `json:"part_code"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	CarModel   string `json:"car_model"`
	Lot        string `json:"lot"`
	ImageURL   string `json:"image_url"`
}

// PartResponse repuesto del catálogo.
type PartResponse struct {
	ID         string    `json:"id"`
	PartCode   string    `json:"part_code"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	CarModel   string    `json:"car_model"`
	Lot        string    `json:"lot"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PartListResponse listado paginado de repuestos.
type PartListResponse struct {
	Items []PartResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría de repuestos.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
