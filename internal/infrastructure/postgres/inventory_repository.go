package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, company_id, product_id, quantity, created_at`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	db DB
}

// NewInventoryRepository construye el adaptador de persistencia para inventario.
func NewInventoryRepository(db DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Create persiste un registro; id y created_at los asigna la base de datos.
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (company_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, inv.CompanyID, inv.ProductID, inv.Quantity).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return mapInventoryWriteError("insert inventory", err)
	}
	return nil
}

// GetByID obtiene un registro por ID. (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventories WHERE id = $1`, id).
		Scan(&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Update actualiza empresa, producto y cantidad. created_at no cambia.
func (r *InventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `UPDATE inventories SET company_id = $2, product_id = $3, quantity = $4 WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, inv.ID, inv.CompanyID, inv.ProductID, inv.Quantity)
	if err != nil {
		return mapInventoryWriteError("update inventory", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve registros, más recientes primero.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter, limit, offset int) ([]*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + ` FROM inventories
		WHERE ($1::bigint IS NULL OR company_id = $1)
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, nullableID(filter.CompanyID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Inventory, 0)
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.ProductID, &inv.Quantity, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Count total de registros para el filtro.
func (r *InventoryRepo) Count(ctx context.Context, filter repository.InventoryFilter) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventories WHERE ($1::bigint IS NULL OR company_id = $1)`,
		nullableID(filter.CompanyID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventories: %w", err)
	}
	return n, nil
}

// Delete elimina un registro.
func (r *InventoryRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM inventories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReportRows filas del informe con nombres de empresa y producto, más recientes primero.
func (r *InventoryRepo) ReportRows(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryReportRow, error) {
	query := `
		SELECT c.name, p.name, i.quantity, i.created_at
		FROM inventories i
		JOIN companies c ON c.id = i.company_id
		JOIN products p ON p.id = i.product_id
		WHERE ($1::bigint IS NULL OR i.company_id = $1)
		ORDER BY i.created_at DESC, i.id DESC`
	rows, err := r.db.Query(ctx, query, nullableID(filter.CompanyID))
	if err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryReportRow, 0)
	for rows.Next() {
		var row entity.InventoryReportRow
		if err := rows.Scan(&row.CompanyName, &row.ProductName, &row.Quantity, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

func mapInventoryWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		if constraintMentions(err, "product") {
			return domain.NewValidationError("product", "el producto no existe")
		}
		return domain.NewValidationError("company", "la empresa no existe")
	}
	return fmt.Errorf("%s: %w", op, err)
}
