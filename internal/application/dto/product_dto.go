package dto

import "github.com/jhoicas/multitenant-inventory/internal/domain/entity"

// ProductRequest entrada para crear o reemplazar (PUT) un producto.
// Price: {"USD": 10.5, "COP": 42000}; claves ISO 4217, montos no negativos.
type ProductRequest struct {
	Code     string        `json:"code" validate:"required,max=50"`
	Name     string        `json:"name" validate:"required,max=255"`
	Features string        `json:"features" validate:"required"`
	Price    entity.Prices `json:"price" validate:"currency_map"`
	Company  int64         `json:"company" validate:"required,gt=0"`
}

// PatchProductRequest actualización parcial de un producto.
type PatchProductRequest struct {
	Code     *string        `json:"code" validate:"omitempty,min=1,max=50"`
	Name     *string        `json:"name" validate:"omitempty,min=1,max=255"`
	Features *string        `json:"features" validate:"omitempty,min=1"`
	Price    *entity.Prices `json:"price" validate:"omitempty,currency_map"`
	Company  *int64         `json:"company" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID       int64         `json:"id"`
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Features string        `json:"features"`
	Price    entity.Prices `json:"price"`
	Company  int64         `json:"company"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
