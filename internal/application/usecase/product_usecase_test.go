package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

func validProduct() dto.ProductRequest {
	return dto.ProductRequest{
		Code:     "P-001",
		Name:     "Laptop",
		Features: "16GB RAM",
		Price:    entity.Prices{"USD": decimal.RequireFromString("999.99")},
		Company:  1,
	}
}

func TestProductCreate_OK(t *testing.T) {
	repo, companies := new(productRepoMock), new(companyRepoMock)
	companies.On("GetByID", ctx, int64(1)).Return(&entity.Company{ID: 1}, nil)
	repo.On("GetByCode", ctx, "P-001").Return(nil, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)

	out, err := usecase.NewProductUseCase(repo, companies).Create(ctx, validProduct())
	require.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.Equal(t, int64(1), out.Company)
	assert.True(t, out.Price["USD"].Equal(decimal.RequireFromString("999.99")))
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	repo, companies := new(productRepoMock), new(companyRepoMock)
	companies.On("GetByID", ctx, int64(1)).Return(&entity.Company{ID: 1}, nil)
	repo.On("GetByCode", ctx, "P-001").Return(&entity.Product{ID: 2, Code: "P-001"}, nil)

	_, err := usecase.NewProductUseCase(repo, companies).Create(ctx, validProduct())
	var dup *domain.DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "code", dup.Field)
}

func TestProductCreate_EmpresaInexistente(t *testing.T) {
	repo, companies := new(productRepoMock), new(companyRepoMock)
	companies.On("GetByID", ctx, int64(1)).Return(nil, nil)

	_, err := usecase.NewProductUseCase(repo, companies).Create(ctx, validProduct())
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "company")
}

func TestProductCreate_PrecioNegativo(t *testing.T) {
	in := validProduct()
	in.Price = entity.Prices{"USD": decimal.NewFromInt(-1)}

	_, err := usecase.NewProductUseCase(new(productRepoMock), new(companyRepoMock)).Create(ctx, in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "price")
}

func TestProductPatch_Precio(t *testing.T) {
	repo, companies := new(productRepoMock), new(companyRepoMock)
	current := &entity.Product{ID: 10, Code: "P-001", Name: "Laptop", CompanyID: 1, Price: entity.Prices{"USD": decimal.NewFromInt(1)}}
	repo.On("GetByID", ctx, int64(10)).Return(current, nil)
	repo.On("Update", ctx, current).Return(nil)

	prices := entity.Prices{"EUR": decimal.NewFromInt(7)}
	out, err := usecase.NewProductUseCase(repo, companies).Patch(ctx, 10, dto.PatchProductRequest{Price: &prices})
	require.NoError(t, err)
	assert.Equal(t, prices, out.Price)
	assert.Equal(t, "Laptop", out.Name)
}

func TestProductList_FiltroPorEmpresa(t *testing.T) {
	repo := new(productRepoMock)
	companyID := int64(4)
	filter := repository.ProductFilter{CompanyID: &companyID}
	repo.On("List", ctx, filter, 20, 0).Return([]*entity.Product{{ID: 1, CompanyID: 4}}, nil)
	repo.On("Count", ctx, filter).Return(1, nil)

	out, err := usecase.NewProductUseCase(repo, new(companyRepoMock)).List(ctx, filter, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(4), out.Items[0].Company)
	assert.Equal(t, 1, out.Page.Total)
}

func TestProductDelete_NoExiste(t *testing.T) {
	repo := new(productRepoMock)
	repo.On("GetByID", ctx, int64(77)).Return(nil, nil)

	err := usecase.NewProductUseCase(repo, new(companyRepoMock)).Delete(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
