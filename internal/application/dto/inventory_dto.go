package dto

import "time"

// InventoryRequest entrada para crear o reemplazar (PUT) un registro de inventario.
type InventoryRequest struct {
	Company  int64  `json:"company" validate:"required,gt=0"`
	Product  int64  `json:"product" validate:"required,gt=0"`
	Quantity *int64 `json:"quantity" validate:"required,gte=0"`
}

// PatchInventoryRequest actualización parcial de inventario.
type PatchInventoryRequest struct {
	Company  *int64 `json:"company" validate:"omitempty,gt=0"`
	Product  *int64 `json:"product" validate:"omitempty,gt=0"`
	Quantity *int64 `json:"quantity" validate:"omitempty,gte=0"`
}

// InventoryResponse salida de un registro de inventario.
type InventoryResponse struct {
	ID        int64     `json:"id"`
	Company   int64     `json:"company"`
	Product   int64     `json:"product"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryListResponse lista paginada de inventario.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// SendReportRequest entrada de POST /inventories/send_email.
type SendReportRequest struct {
	Email     string `json:"email" validate:"required,email"`
	CompanyID *int64 `json:"company_id" validate:"omitempty,gt=0"`
}
