package http_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/internal/domain"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/domain/repository"
)

var ctx = context.Background()

// memStore base de datos en memoria compartida por los cuatro repositorios.
type memStore struct {
	mu          sync.Mutex
	seq         int64
	companies   map[int64]*entity.Company
	products    map[int64]*entity.Product
	inventories map[int64]*entity.Inventory
	users       map[int64]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		companies:   map[int64]*entity.Company{},
		products:    map[int64]*entity.Product{},
		inventories: map[int64]*entity.Inventory{},
		users:       map[int64]*entity.User{},
	}
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ── Company ──

type memCompanies struct{ *memStore }

var _ repository.CompanyRepository = memCompanies{}

func (r memCompanies) Create(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r memCompanies) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r memCompanies) GetByNIT(_ context.Context, nit string) (*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.NIT == nit {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memCompanies) Update(_ context.Context, c *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r memCompanies) List(_ context.Context, limit, offset int) ([]*entity.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r memCompanies) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.companies), nil
}

func (r memCompanies) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return domain.ErrNotFound
	}
	for pid, p := range r.products {
		if p.CompanyID == id {
			r.deleteInventoryOf(func(inv *entity.Inventory) bool { return inv.ProductID == pid })
			delete(r.products, pid)
		}
	}
	r.deleteInventoryOf(func(inv *entity.Inventory) bool { return inv.CompanyID == id })
	delete(r.companies, id)
	return nil
}

func (s *memStore) deleteInventoryOf(match func(*entity.Inventory) bool) {
	for iid, inv := range s.inventories {
		if match(inv) {
			delete(s.inventories, iid)
		}
	}
}

// ── Product ──

type memProducts struct{ *memStore }

var _ repository.ProductRepository = memProducts{}

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memProducts) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r memProducts) filtered(f repository.ProductFilter) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range r.products {
		if f.CompanyID != nil && p.CompanyID != *f.CompanyID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r memProducts) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.filtered(f), limit, offset), nil
}

func (r memProducts) Count(_ context.Context, f repository.ProductFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filtered(f)), nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	r.deleteInventoryOf(func(inv *entity.Inventory) bool { return inv.ProductID == id })
	delete(r.products, id)
	return nil
}

// ── Inventory ──

type memInventories struct{ *memStore }

var _ repository.InventoryRepository = memInventories{}

func (r memInventories) Create(_ context.Context, inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.ID = r.nextID()
	inv.CreatedAt = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC).Add(time.Duration(inv.ID) * time.Minute)
	cp := *inv
	r.inventories[inv.ID] = &cp
	return nil
}

func (r memInventories) GetByID(_ context.Context, id int64) (*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv, ok := r.inventories[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func (r memInventories) Update(_ context.Context, inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inventories[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.inventories[inv.ID] = &cp
	return nil
}

func (r memInventories) filtered(f repository.InventoryFilter) []*entity.Inventory {
	out := []*entity.Inventory{}
	for _, inv := range r.inventories {
		if f.CompanyID != nil && inv.CompanyID != *f.CompanyID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memInventories) List(_ context.Context, f repository.InventoryFilter, limit, offset int) ([]*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.filtered(f), limit, offset), nil
}

func (r memInventories) Count(_ context.Context, f repository.InventoryFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filtered(f)), nil
}

func (r memInventories) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inventories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.inventories, id)
	return nil
}

func (r memInventories) ReportRows(_ context.Context, f repository.InventoryFilter) ([]*entity.InventoryReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := []*entity.InventoryReportRow{}
	for _, inv := range r.filtered(f) {
		rows = append(rows, &entity.InventoryReportRow{
			CompanyName: r.companies[inv.CompanyID].Name,
			ProductName: r.products[inv.ProductID].Name,
			Quantity:    inv.Quantity,
			CreatedAt:   inv.CreatedAt,
		})
	}
	return rows, nil
}

// ── User ──

type memUsers struct{ *memStore }

var _ repository.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) find(match func(*entity.User) bool) *entity.User {
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return u.ID == id }), nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) }), nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return u.Username == username }), nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUsers) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.User{}
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r memUsers) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r memUsers) HasAdmin(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(u *entity.User) bool { return u.Role == entity.RoleAdmin }) != nil, nil
}

// ── Report collaborators ──

// textRenderer devuelve un "PDF" de texto plano con una línea por registro.
type textRenderer struct {
	lines []string
}

func (r *textRenderer) Render(_ context.Context, title string, lines []string) ([]byte, error) {
	r.lines = lines
	return []byte("%PDF-1.3\n" + title + "\n" + strings.Join(lines, "\n")), nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []report.Mail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg report.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.revoked == nil {
		b.revoked = map[string]bool{}
	}
	b.revoked[jti] = true
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[jti], nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

var errSMTPDown = errors.New("smtp: conexión rechazada")
