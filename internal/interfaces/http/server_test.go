package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/multitenant-inventory/internal/application/auth"
	"github.com/jhoicas/multitenant-inventory/internal/application/report"
	"github.com/jhoicas/multitenant-inventory/internal/application/usecase"
	"github.com/jhoicas/multitenant-inventory/internal/domain/authz"
	"github.com/jhoicas/multitenant-inventory/internal/domain/entity"
	"github.com/jhoicas/multitenant-inventory/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/multitenant-inventory/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/multitenant-inventory/pkg/jwt"
	"github.com/jhoicas/multitenant-inventory/pkg/logger"
)

const testPassword = "s3cret-pass"

// testServer API completa sobre repositorios en memoria.
type testServer struct {
	t        *testing.T
	app      *fiber.App
	store    *memStore
	issuer   *pkgjwt.Issuer
	renderer *textRenderer
	mailer   *recordingMailer
	metrics  *metrics.Metrics
	health   map[string]apphttp.Pinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithHealth(t, map[string]apphttp.Pinger{"postgres": stubPinger{}, "redis": stubPinger{}})
}

func newTestServerWithHealth(t *testing.T, health map[string]apphttp.Pinger) *testServer {
	t.Helper()
	s := &testServer{
		t:        t,
		store:    newMemStore(),
		issuer:   newTestIssuer(t),
		renderer: &textRenderer{},
		mailer:   &recordingMailer{},
		metrics:  metrics.New(nil),
		health:   health,
	}
	companies := memCompanies{s.store}
	products := memProducts{s.store}
	inventories := memInventories{s.store}
	users := memUsers{s.store}

	log := logger.Nop()
	s.app = apphttp.NewApp(apphttp.AppOptions{Name: "test", Log: log, Metrics: s.metrics})
	apphttp.Router(s.app, apphttp.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(companies),
		ProductUC:   usecase.NewProductUseCase(products, companies),
		InventoryUC: usecase.NewInventoryUseCase(inventories, companies, products),
		UserUC:      usecase.NewUserUseCase(users),
		AuthUC:      auth.NewAuthUseCase(users, s.issuer, &memBlacklist{}),
		ReportUC:    report.NewUseCase(inventories, s.renderer, s.mailer, t.TempDir()),
		Issuer:      s.issuer,
		Policy:      authz.DefaultPolicy(),
		Metrics:     s.metrics,
		Health:      health,
		Log:         log,
	})
	return s
}

// ── Fixtures ──

func (s *testServer) seedUser(username, role string, active bool) *entity.User {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(s.t, err)
	u := &entity.User{
		Username: username, Email: username + "@example.com", PasswordHash: string(hash),
		Role: role, IsActive: active, IsStaff: role == entity.RoleAdmin,
	}
	require.NoError(s.t, memUsers{s.store}.Create(ctx, u))
	return u
}

func (s *testServer) seedCompany(nit, name string) *entity.Company {
	s.t.Helper()
	c := &entity.Company{NIT: nit, Name: name, Address: "Calle 1", Phone: "3000000"}
	require.NoError(s.t, memCompanies{s.store}.Create(ctx, c))
	return c
}

func (s *testServer) seedProduct(companyID int64, code, name string) *entity.Product {
	s.t.Helper()
	p := &entity.Product{
		Code: code, Name: name, Features: "n/a", CompanyID: companyID,
		Price: entity.Prices{"USD": decimal.RequireFromString("10.50")},
	}
	require.NoError(s.t, memProducts{s.store}.Create(ctx, p))
	return p
}

func (s *testServer) seedInventory(companyID, productID, qty int64) *entity.Inventory {
	s.t.Helper()
	inv := &entity.Inventory{CompanyID: companyID, ProductID: productID, Quantity: qty}
	require.NoError(s.t, memInventories{s.store}.Create(ctx, inv))
	return inv
}

func (s *testServer) tokenFor(u *entity.User) string {
	s.t.Helper()
	tok, err := s.issuer.Access(u.ID, u.Role)
	require.NoError(s.t, err)
	return tok
}

// ── Peticiones ──

type result struct {
	status int
	header http.Header
	body   []byte
}

func (r result) json(t *testing.T, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func (r result) errorBody(t *testing.T) errorEnvelope {
	t.Helper()
	var e errorEnvelope
	r.json(t, &e)
	return e
}

type errorEnvelope struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields"`
}

func (s *testServer) do(method, path string, body any, token string) result {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(s.t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return result{status: resp.StatusCode, header: resp.Header, body: raw}
}
