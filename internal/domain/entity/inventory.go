package entity

import "time"

// Inventory es un registro de cantidad disponible de un producto para una empresa.
type Inventory struct {
	ID        int64
	CompanyID int64
	ProductID int64
	Quantity  int64 // nunca negativa
	CreatedAt time.Time
}

// InventoryReportRow fila ya resuelta (nombres de empresa y producto) para el informe PDF.
type InventoryReportRow struct {
	CompanyName string
	ProductName string
	Quantity    int64
	CreatedAt   time.Time
}
