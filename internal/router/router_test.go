package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-inventory-ledger/internal/cache"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/internal/testutil"
	"go-inventory-ledger/internal/ws"
	"go-inventory-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin123"
)

type apiFixture struct {
	app   *fiber.App
	roles repository.RoleRepository
	token string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	db := testutil.NewDB(t)
	log := zap.NewNop()

	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	privileges := repository.NewPrivilegeRepo(db)
	require.NoError(t, service.Seed(users, roles, privileges, log, service.SeedOptions{AdminEmail: adminEmail, AdminPassword: adminPassword}))

	hub := ws.NewHub(log)
	repos := repository.NewRepositories(db)
	deps := Deps{
		Auth:       service.NewAuthService(users, jwt.NewManager("router-secret", time.Hour), hub, log, service.AuthOptions{}),
		Users:      service.NewUserService(users, privileges, roles),
		Products:   service.NewProductService(repos.Products, log),
		Suppliers:  service.NewSupplierService(repos.Suppliers, log),
		Ledger:     service.NewLedgerService(repository.NewUnitOfWork(db), repos, hub, cache.NoopCache{}, log, service.LedgerOptions{AuditPurchases: true}),
		Dashboard:  service.NewDashboardService(repository.NewAnalyticsRepo(db), cache.NoopCache{}, log, service.DashboardOptions{LowStockThreshold: 10}),
		Roles:      roles,
		Privileges: privileges,
		Hub:        hub,
	}

	app := fiber.New()
	Setup(app, deps)

	f := &apiFixture{app: app, roles: roles}
	f.token = f.login(t, adminEmail, adminPassword)
	return f
}

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Purchase json.RawMessage `json:"purchase"`
	Sale     json.RawMessage `json:"sale"`
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	status, env := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, env.Message)
	var login service.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	return login.Token
}

func (f *apiFixture) createProduct(t *testing.T, sku string, stock int) model.Product {
	t.Helper()
	status, env := f.do(t, http.MethodPost, "/api/v1/products", f.token, map[string]interface{}{
		"sku": sku, "name": "Widget " + sku, "stock": stock, "unit": "pcs", "price": "12.50",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var p model.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func (f *apiFixture) createSupplier(t *testing.T, status string) model.Supplier {
	t.Helper()
	code, env := f.do(t, http.MethodPost, "/api/v1/suppliers", f.token, map[string]interface{}{
		"name": "Acme " + status, "status": status,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var s model.Supplier
	require.NoError(t, json.Unmarshal(env.Data, &s))
	return s
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPI(t)

	status, env := f.do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = f.do(t, http.MethodGet, "/api/v1/products", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPrivilegeIsEnforced(t *testing.T) {
	f := newAPI(t)

	adminRole, err := f.roles.FindByCode(model.RoleAdmin)
	require.NoError(t, err)
	status, env := f.do(t, http.MethodPost, "/api/v1/users", f.token, map[string]interface{}{
		"email": "clerk@example.com", "password": "secret1", "full_name": "Clerk", "role_id": adminRole.ID,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	clerk := f.login(t, "clerk@example.com", "secret1")
	status, _ = f.do(t, http.MethodGet, "/api/v1/products", clerk, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = f.do(t, http.MethodPost, "/api/v1/users", clerk, map[string]interface{}{
		"email": "other@example.com", "password": "secret1", "full_name": "Other", "role_id": adminRole.ID,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, env.Message, "user:create")
}

func TestPurchaseAndSaleFlow(t *testing.T) {
	f := newAPI(t)
	product := f.createProduct(t, "api-01", 5)
	supplier := f.createSupplier(t, "Active")

	// a caller-supplied total is ignored
	status, env := f.do(t, http.MethodPost, "/api/v1/purchases", f.token, map[string]interface{}{
		"product_id": product.ID, "supplier_id": supplier.ID, "quantity": 4, "unit_price": "2.50", "total_amount": "999",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var purchase model.Purchase
	require.NoError(t, json.Unmarshal(env.Purchase, &purchase))
	assert.Equal(t, "10.00", purchase.TotalAmount.StringFixed(2))

	status, env = f.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), f.token, nil)
	require.Equal(t, http.StatusOK, status)
	var reloaded model.Product
	require.NoError(t, json.Unmarshal(env.Data, &reloaded))
	assert.Equal(t, 9, reloaded.Stock)

	status, env = f.do(t, http.MethodPost, "/api/v1/sales", f.token, map[string]interface{}{
		"product_id": product.ID, "quantity": 20, "sale_price": "3",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "available=9, requested=20")

	status, env = f.do(t, http.MethodPost, "/api/v1/sales", f.token, map[string]interface{}{
		"product_id": product.ID, "quantity": 2, "sale_price": "3", "payment_method": "CASH",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var sale model.Sale
	require.NoError(t, json.Unmarshal(env.Sale, &sale))
	assert.Equal(t, "6.00", sale.TotalAmount.StringFixed(2))

	status, env = f.do(t, http.MethodGet, "/api/v1/products/"+product.ID.String()+"/history", f.token, nil)
	require.Equal(t, http.StatusOK, status)
	var history []model.ProductHistory
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Len(t, history, 2, "purchase and sale are both audited")

	status, _ = f.do(t, http.MethodDelete, "/api/v1/sales/"+sale.ID.String(), f.token, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodGet, "/api/v1/sales/"+sale.ID.String(), f.token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = f.do(t, http.MethodGet, "/api/v1/purchases/"+purchase.ID.String()+"/invoice", f.token, nil)
	require.Equal(t, http.StatusOK, status)
	var receipt model.PurchaseReceipt
	require.NoError(t, json.Unmarshal(env.Data, &receipt))
	assert.Equal(t, purchase.ID, receipt.PurchaseID)
}

func TestInactiveSupplierIsRejected(t *testing.T) {
	f := newAPI(t)
	product := f.createProduct(t, "api-02", 0)
	supplier := f.createSupplier(t, "Inactive")

	status, env := f.do(t, http.MethodPost, "/api/v1/purchases", f.token, map[string]interface{}{
		"product_id": product.ID, "supplier_id": supplier.ID, "quantity": 1, "unit_price": "1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "inactive")
}

func TestErrorStatuses(t *testing.T) {
	f := newAPI(t)
	f.createProduct(t, "api-03", 1)

	status, _ := f.do(t, http.MethodGet, "/api/v1/products/not-a-uuid", f.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/purchases/"+uuid.NewString(), f.token, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = f.do(t, http.MethodPost, "/api/v1/products", f.token, map[string]interface{}{"sku": "API-03", "name": "dup"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/dashboard/stock-movement?days=0", f.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/dashboard/financial?from=2026-02-01&to=2026-01-01", f.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodGet, "/api/v1/dashboard/financial?from=yesterday", f.token, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env := f.do(t, http.MethodGet, "/api/v1/dashboard/stats", f.token, nil)
	require.Equal(t, http.StatusOK, status)
	var stats model.DashboardStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalProducts)
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	f := newAPI(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
