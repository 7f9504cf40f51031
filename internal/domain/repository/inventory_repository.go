package repository

import (
	"context"

	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
)

// InventoryFilter filtros opcionales para listar inventario y generar el informe.
type InventoryFilter struct {
	CompanyID *int64
}

// InventoryRepository define el puerto de persistencia para Inventory (DIP).
type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	GetByID(ctx context.Context, id int64) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context, filter InventoryFilter, limit, offset int) ([]*entity.Inventory, error)
	Count(ctx context.Context, filter InventoryFilter) (int, error)
	Delete(ctx context.Context, id int64) error
	// ReportRows devuelve todas las filas (sin paginar) con nombres resueltos, más recientes primero.
	ReportRows(ctx context.Context, filter InventoryFilter) ([]*entity.InventoryReportRow, error)
}
