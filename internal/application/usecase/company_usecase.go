package usecase

import (
	"context"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/validation"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

// CompanyUseCase casos de uso CRUD para empresas.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una empresa. El NIT debe ser único.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNIT(ctx, in.NIT, 0); err != nil {
		return nil, err
	}
	company := &entity.Company{NIT: in.NIT, Name: in.Name, Address: in.Address, Phone: in.Phone}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa; ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Update reemplaza todos los campos de la empresa (PUT).
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueNIT(ctx, in.NIT, id); err != nil {
		return nil, err
	}
	company.NIT, company.Name, company.Address, company.Phone = in.NIT, in.Name, in.Address, in.Phone
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Patch actualiza solo los campos presentes (PATCH).
func (uc *CompanyUseCase) Patch(ctx context.Context, id int64, in dto.PatchCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.NIT != nil {
		if err := uc.ensureUniqueNIT(ctx, *in.NIT, id); err != nil {
			return nil, err
		}
		company.NIT = *in.NIT
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List lista empresas ordenadas por nombre.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina la empresa con sus productos e inventario.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CompanyUseCase) load(ctx context.Context, id int64) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// ensureUniqueNIT selfID excluye a la propia empresa en actualizaciones.
func (uc *CompanyUseCase) ensureUniqueNIT(ctx context.Context, nit string, selfID int64) error {
	existing, err := uc.repo.GetByNIT(ctx, nit)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &domain.DuplicateError{Field: "nit"}
	}
	return nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{ID: c.ID, NIT: c.NIT, Name: c.Name, Address: c.Address, Phone: c.Phone}
}
