package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

// ── Mocks de repositorios ──────────────────────────────────────────────────────

type companyRepoMock struct{ mock.Mock }

func (m *companyRepoMock) Create(ctx context.Context, c *entity.Company) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *companyRepoMock) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *companyRepoMock) GetByNIT(ctx context.Context, nit string) (*entity.Company, error) {
	args := m.Called(ctx, nit)
	c, _ := args.Get(0).(*entity.Company)
	return c, args.Error(1)
}

func (m *companyRepoMock) Update(ctx context.Context, c *entity.Company) error {
	return m.Called(ctx, c).Error(0)
}

func (m *companyRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.Company)
	return list, args.Error(1)
}

func (m *companyRepoMock) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *companyRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type productRepoMock struct{ mock.Mock }

func (m *productRepoMock) Create(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 10
	}
	return args.Error(0)
}

func (m *productRepoMock) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *productRepoMock) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *productRepoMock) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, f, limit, offset)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *productRepoMock) Count(ctx context.Context, f repository.ProductFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *productRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type inventoryRepoMock struct{ mock.Mock }

func (m *inventoryRepoMock) Create(ctx context.Context, inv *entity.Inventory) error {
	args := m.Called(ctx, inv)
	if args.Error(0) == nil {
		inv.ID = 100
	}
	return args.Error(0)
}

func (m *inventoryRepoMock) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*entity.Inventory)
	return inv, args.Error(1)
}

func (m *inventoryRepoMock) Update(ctx context.Context, inv *entity.Inventory) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *inventoryRepoMock) List(ctx context.Context, f repository.InventoryFilter, limit, offset int) ([]*entity.Inventory, error) {
	args := m.Called(ctx, f, limit, offset)
	list, _ := args.Get(0).([]*entity.Inventory)
	return list, args.Error(1)
}

func (m *inventoryRepoMock) Count(ctx context.Context, f repository.InventoryFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *inventoryRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *inventoryRepoMock) ReportRows(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryReportRow, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]*entity.InventoryReportRow)
	return rows, args.Error(1)
}

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 5
	}
	return args.Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *userRepoMock) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *userRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *userRepoMock) HasAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
