package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"gomarket/internal/application"
	"gomarket/internal/domain/apperr"
	"gomarket/internal/domain/entity"
	repo "gomarket/internal/domain/repository"
	handlers "gomarket/internal/interface/http"
	"gomarket/internal/router"
	"gomarket/internal/router/modules"
	"gomarket/pkg/helpers"
	"gomarket/pkg/response"
	"gomarket/pkg/validation"
)

// In-memory backends standing in for postgres. The store's InTx holds the
// mutex for the whole transaction and rolls back to a snapshot on error, the
// same guarantees the pgx implementation gets from the database.

type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*entity.User
}

func newMemUsers() *memUsers { return &memUsers{byName: make(map[string]*entity.User)} }

func (m *memUsers) Create(ctx context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.Username]; ok {
		return apperr.ErrUsernameTaken
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	cp := *u
	m.byName[u.Username] = &cp
	return nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type memMarket struct {
	mu        sync.Mutex
	nextProd  int64
	nextOrder int64
	products  map[int64]*entity.Product
	orders    []entity.Order
}

func newMemMarket() *memMarket { return &memMarket{products: make(map[int64]*entity.Product)} }

func (m *memMarket) List(ctx context.Context) ([]entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Product, 0, len(m.products))
	for id := int64(1); id <= m.nextProd; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memMarket) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memMarket) Create(ctx context.Context, p *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextProd++
	p.ID = m.nextProd
	p.CreatedAt = time.Now()
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memMarket) DecrementIfSufficient(ctx context.Context, id int64, amount int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decrementLocked(id, amount)
}

func (m *memMarket) decrementLocked(id int64, amount int64) (bool, error) {
	p, ok := m.products[id]
	if !ok || p.Quantity < amount {
		return false, nil
	}
	p.Quantity -= amount
	return true, nil
}

func (m *memMarket) CreateOrder(ctx context.Context, o *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendOrderLocked(o)
	return nil
}

func (m *memMarket) appendOrderLocked(o *entity.Order) {
	m.nextOrder++
	o.ID = m.nextOrder
	o.CreatedAt = time.Now()
	m.orders = append(m.orders, *o)
}

func (m *memMarket) ListByUser(ctx context.Context, userID int64) ([]entity.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]entity.OrderLine, 0)
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		name := ""
		if p, ok := m.products[o.ProductID]; ok {
			name = p.Name
		}
		lines = append(lines, entity.OrderLine{ID: o.ID, Product: name, Quantity: o.Quantity})
	}
	return lines, nil
}

type marketTx struct{ m *memMarket }

func (t *marketTx) List(ctx context.Context) ([]entity.Product, error) {
	return nil, errors.New("not used in tx")
}
func (t *marketTx) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, ok := t.m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (t *marketTx) Create(ctx context.Context, p *entity.Product) error {
	return errors.New("not used in tx")
}
func (t *marketTx) DecrementIfSufficient(ctx context.Context, id int64, amount int64) (bool, error) {
	return t.m.decrementLocked(id, amount)
}

type marketTxOrders struct{ m *memMarket }

func (t *marketTxOrders) Create(ctx context.Context, o *entity.Order) error {
	t.m.appendOrderLocked(o)
	return nil
}
func (t *marketTxOrders) ListByUser(ctx context.Context, userID int64) ([]entity.OrderLine, error) {
	return nil, errors.New("not used in tx")
}

func (m *memMarket) InTx(ctx context.Context, fn func(products repo.ProductRepository, orders repo.OrderRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := make(map[int64]entity.Product, len(m.products))
	for id, p := range m.products {
		snap[id] = *p
	}
	snapOrders := append([]entity.Order(nil), m.orders...)
	snapNext := m.nextOrder

	if err := fn(&marketTx{m}, &marketTxOrders{m}); err != nil {
		m.products = make(map[int64]*entity.Product, len(snap))
		for id := range snap {
			p := snap[id]
			m.products[id] = &p
		}
		m.orders = snapOrders
		m.nextOrder = snapNext
		return err
	}
	return nil
}

type memOrderRepo struct{ m *memMarket }

func (r *memOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.m.CreateOrder(ctx, o)
}
func (r *memOrderRepo) ListByUser(ctx context.Context, userID int64) ([]entity.OrderLine, error) {
	return r.m.ListByUser(ctx, userID)
}

var validatorSetup sync.Once

func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validatorSetup.Do(validation.Init)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUsers()
	market := newMemMarket()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	authSvc := application.NewAuthService(users, jwt, logger)
	catalogSvc := application.NewCatalogService(market, nil, logger, nil, "", 0)
	orderSvc := application.NewOrderService(market, &memOrderRepo{market}, market, catalogSvc, nil, logger)

	r := gin.New()
	reg := router.NewRegistry(r)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	reg.Add(modules.NewCatalogModule(handlers.NewProductHandler(catalogSvc, logger), jwt))
	reg.Add(modules.NewOrderModule(handlers.NewOrderHandler(orderSvc, logger), jwt))
	reg.RegisterAll()

	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/login/", "", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		JWTToken string `json:"jwtToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.JWTToken)
	return resp.JWTToken
}

func register(t *testing.T, r *gin.Engine, username, password string) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/users/", "", gin.H{
		"username": username,
		"name":     "Test User",
		"password": password,
		"gender":   "female",
		"location": "Berlin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestAPI_FullPurchaseFlow(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)

	register(t, r, "alice", "secret")
	token := login(t, r, "alice", "secret")

	// Catalog starts empty.
	w := doJSON(r, http.MethodGet, "/products/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())

	// Stock a product.
	w = doJSON(r, http.MethodPost, "/products/", token, gin.H{"name": "Pear", "price": 20, "quantity": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "product created successfully", w.Body.String())

	// Buy 3 of it.
	w = doJSON(r, http.MethodPost, "/orders/", token, gin.H{"product_id": 1, "quantity": 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Equal(t, "order placed successfully", w.Body.String())

	// Stock is down to 7.
	w = doJSON(r, http.MethodGet, "/products/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []entity.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)
	require.Equal(t, "Pear", products[0].Name)
	require.EqualValues(t, 7, products[0].Quantity)

	// The order shows up on the caller's history with the product name.
	w = doJSON(r, http.MethodGet, "/orders/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []entity.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, "Pear", lines[0].Product)
	require.EqualValues(t, 3, lines[0].Quantity)

	// Asking for more than remains fails and leaves stock untouched.
	w = doJSON(r, http.MethodPost, "/orders/", token, gin.H{"product_id": 1, "quantity": 8})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "insufficient stock", errBody.Message)

	w = doJSON(r, http.MethodGet, "/products/", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.EqualValues(t, 7, products[0].Quantity)
}

func TestAPI_RegisterValidationAndDuplicates(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)

	// Missing fields are a 400 with per-field details.
	w := doJSON(r, http.MethodPost, "/users/", "", gin.H{"username": "bob"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "missing required fields", errBody.Message)
	require.Contains(t, errBody.Details, "password")

	register(t, r, "bob", "pw")

	w = doJSON(r, http.MethodPost, "/users/", "", gin.H{
		"username": "bob", "name": "Other Bob", "password": "pw2", "gender": "male", "location": "Oslo",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "user already exists", errBody.Message)
}

func TestAPI_LoginFailuresShareOneMessage(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)
	register(t, r, "carol", "right-password")

	for _, creds := range []gin.H{
		{"username": "nobody", "password": "whatever"},
		{"username": "carol", "password": "wrong-password"},
	} {
		w := doJSON(r, http.MethodPost, "/login/", "", creds)
		require.Equal(t, http.StatusBadRequest, w.Code)
		var errBody response.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
		require.Equal(t, "invalid user or password", errBody.Message)
	}
}

func TestAPI_PrivilegedRoutesFailClosed(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)

	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/products/", gin.H{"name": "Pear", "price": 1, "quantity": 1}},
		{http.MethodPost, "/orders/", gin.H{"product_id": 1, "quantity": 1}},
		{http.MethodGet, "/orders/", nil},
	}

	for _, tc := range cases {
		w := doJSON(r, tc.method, tc.path, "", tc.body)
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", tc.method, tc.path)

		w = doJSON(r, tc.method, tc.path, "not-a-real-token", tc.body)
		require.Equal(t, http.StatusForbidden, w.Code, "%s %s with bad token", tc.method, tc.path)
	}
}

func TestAPI_OrderValidation(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)
	register(t, r, "dave", "pw")
	token := login(t, r, "dave", "pw")

	// Unknown product.
	w := doJSON(r, http.MethodPost, "/orders/", token, gin.H{"product_id": 99, "quantity": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "product not found", errBody.Message)

	// Non-positive quantity is rejected at binding.
	w = doJSON(r, http.MethodPost, "/orders/", token, gin.H{"product_id": 1, "quantity": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Equal(t, "missing required fields", errBody.Message)

	w = doJSON(r, http.MethodPost, "/orders/", token, gin.H{"product_id": 1, "quantity": -2})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_ProductValidation(t *testing.T) {
	t.Parallel()
	r := newTestAPI(t)
	register(t, r, "erin", "pw")
	token := login(t, r, "erin", "pw")

	// Price is required even when zero-valued fields are allowed.
	w := doJSON(r, http.MethodPost, "/products/", token, gin.H{"name": "Pear", "quantity": 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	require.Contains(t, errBody.Details, "price")

	// Zero price and quantity are legal.
	w = doJSON(r, http.MethodPost, "/products/", token, gin.H{"name": "Freebie", "price": 0, "quantity": 0})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Negative quantity is not.
	w = doJSON(r, http.MethodPost, "/products/", token, gin.H{"name": "Bad", "price": 1, "quantity": -1})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
