package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/multitenant-inventory/internal/application/dto"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
)

func qty(n int64) *int64 { return &n }

func newInventoryUC() (*usecase.InventoryUseCase, *inventoryRepoMock, *companyRepoMock, *productRepoMock) {
	repo, companies, products := new(inventoryRepoMock), new(companyRepoMock), new(productRepoMock)
	return usecase.NewInventoryUseCase(repo, companies, products), repo, companies, products
}

func TestInventoryCreate_OK(t *testing.T) {
	uc, repo, companies, products := newInventoryUC()
	companies.On("GetByID", ctx, int64(1)).Return(&entity.Company{ID: 1}, nil)
	products.On("GetByID", ctx, int64(1)).Return(&entity.Product{ID: 1}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(inv *entity.Inventory) bool {
		return inv.CompanyID == 1 && inv.ProductID == 1 && inv.Quantity == 100
	})).Return(nil)

	out, err := uc.Create(ctx, dto.InventoryRequest{Company: 1, Product: 1, Quantity: qty(100)})
	require.NoError(t, err)
	assert.Equal(t, int64(100), out.Quantity)
	assert.Equal(t, int64(100), out.ID)
}

func TestInventoryCreate_ReferenciasInexistentes(t *testing.T) {
	uc, repo, companies, products := newInventoryUC()
	companies.On("GetByID", ctx, int64(8)).Return(nil, nil)
	products.On("GetByID", ctx, int64(9)).Return(nil, nil)

	_, err := uc.Create(ctx, dto.InventoryRequest{Company: 8, Product: 9, Quantity: qty(1)})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "company")
	assert.Contains(t, ve.Fields, "product")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryCreate_CantidadNegativa(t *testing.T) {
	uc, _, _, _ := newInventoryUC()
	_, err := uc.Create(ctx, dto.InventoryRequest{Company: 1, Product: 1, Quantity: qty(-3)})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "quantity")
}

func TestInventoryPatch_ConservaFechaDeCreacion(t *testing.T) {
	uc, repo, _, _ := newInventoryUC()
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	current := &entity.Inventory{ID: 4, CompanyID: 1, ProductID: 2, Quantity: 5, CreatedAt: created}
	repo.On("GetByID", ctx, int64(4)).Return(current, nil)
	repo.On("Update", ctx, current).Return(nil)

	out, err := uc.Patch(ctx, 4, dto.PatchInventoryRequest{Quantity: qty(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
	assert.Equal(t, created, out.CreatedAt)
}

func TestInventoryUpdate_NoExiste(t *testing.T) {
	uc, repo, _, _ := newInventoryUC()
	repo.On("GetByID", ctx, int64(4)).Return(nil, nil)

	_, err := uc.Update(ctx, 4, dto.InventoryRequest{Company: 1, Product: 1, Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
