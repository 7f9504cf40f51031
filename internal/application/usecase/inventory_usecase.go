package usecase

import (
	"context"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/validation"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD para registros de inventario.
type InventoryUseCase struct {
	repo        repository.InventoryRepository
	companyRepo repository.CompanyRepository
	productRepo repository.ProductRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, companyRepo repository.CompanyRepository, productRepo repository.ProductRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, companyRepo: companyRepo, productRepo: productRepo}
}

// Create registra una cantidad para (empresa, producto). Ambos deben existir.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.InventoryRequest) (*dto.InventoryResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureRefs(ctx, &in.Company, &in.Product); err != nil {
		return nil, err
	}
	inv := &entity.Inventory{CompanyID: in.Company, ProductID: in.Product, Quantity: *in.Quantity}
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// GetByID obtiene un registro de inventario.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id int64) (*dto.InventoryResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Update reemplaza el registro (PUT). CreatedAt no cambia.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.InventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureRefs(ctx, &in.Company, &in.Product); err != nil {
		return nil, err
	}
	inv.CompanyID, inv.ProductID, inv.Quantity = in.Company, in.Product, *in.Quantity
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Patch actualiza solo los campos presentes.
func (uc *InventoryUseCase) Patch(ctx context.Context, id int64, in dto.PatchInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureRefs(ctx, in.Company, in.Product); err != nil {
		return nil, err
	}
	if in.Company != nil {
		inv.CompanyID = *in.Company
	}
	if in.Product != nil {
		inv.ProductID = *in.Product
	}
	if in.Quantity != nil {
		inv.Quantity = *in.Quantity
	}
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// List lista inventario, más reciente primero, opcionalmente filtrado por empresa.
func (uc *InventoryUseCase) List(ctx context.Context, filter repository.InventoryFilter, page dto.PageRequest) (*dto.InventoryListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInventoryResponse(inv))
	}
	return &dto.InventoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un registro de inventario.
func (uc *InventoryUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *InventoryUseCase) load(ctx context.Context, id int64) (*entity.Inventory, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// ensureRefs verifica las referencias presentes (nil = no se modifica) y acumula ambos errores.
func (uc *InventoryUseCase) ensureRefs(ctx context.Context, companyID, productID *int64) error {
	verr := &domain.ValidationError{}
	if companyID != nil {
		company, err := uc.companyRepo.GetByID(ctx, *companyID)
		if err != nil {
			return err
		}
		if company == nil {
			verr.Add("company", "la empresa no existe")
		}
	}
	if productID != nil {
		product, err := uc.productRepo.GetByID(ctx, *productID)
		if err != nil {
			return err
		}
		if product == nil {
			verr.Add("product", "el producto no existe")
		}
	}
	if !verr.Empty() {
		return verr
	}
	return nil
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ID:        inv.ID,
		Company:   inv.CompanyID,
		Product:   inv.ProductID,
		Quantity:  inv.Quantity,
		CreatedAt: inv.CreatedAt,
	}
}
