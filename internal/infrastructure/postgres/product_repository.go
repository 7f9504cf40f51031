package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, features, price, company_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// price se guarda como JSONB {"USD": "10.5", ...}.
type ProductRepo struct {
	db DB
	tx *TxRunner
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db DB) *ProductRepo {
	return &ProductRepo{db: db, tx: NewTxRunner(db)}
}

// Create persiste un nuevo producto y asigna su ID.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	price, err := json.Marshal(product.Price)
	if err != nil {
		return fmt.Errorf("marshal price: %w", err)
	}
	query := `
		INSERT INTO products (code, name, features, price, company_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err = r.db.QueryRow(ctx, query, product.Code, product.Name, product.Features, price, product.CompanyID).Scan(&product.ID)
	if err != nil {
		return mapProductWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE code = $1`, code)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	price, err := json.Marshal(product.Price)
	if err != nil {
		return fmt.Errorf("marshal price: %w", err)
	}
	query := `
		UPDATE products SET code = $2, name = $3, features = $4, price = $5, company_id = $6
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, product.ID, product.Code, product.Name, product.Features, price, product.CompanyID)
	if err != nil {
		return mapProductWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve productos ordenados por nombre, opcionalmente de una empresa.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE ($1::bigint IS NULL OR company_id = $1)
		ORDER BY name, id LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, nullableID(filter.CompanyID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count total de productos para el filtro.
func (r *ProductRepo) Count(ctx context.Context, filter repository.ProductFilter) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE ($1::bigint IS NULL OR company_id = $1)`,
		nullableID(filter.CompanyID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Delete elimina el producto y su inventario en una transacción.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, `DELETE FROM inventories WHERE product_id = $1`, id); err != nil {
			return fmt.Errorf("delete product inventories: %w", err)
		}
		cmd, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*entity.Product, error) {
	var (
		p     entity.Product
		price []byte
	)
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Features, &price, &p.CompanyID); err != nil {
		return nil, err
	}
	if len(price) > 0 {
		if err := json.Unmarshal(price, &p.Price); err != nil {
			return nil, fmt.Errorf("decode price: %w", err)
		}
	}
	return &p, nil
}

func mapProductWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return &domain.DuplicateError{Field: "code"}
	case isForeignKeyViolation(err):
		return domain.NewValidationError("company", "la empresa no existe")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
