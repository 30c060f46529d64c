package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	addresssvc "github.com/masstransitco/mtc-toys/internal/address"
	cartsvc "github.com/masstransitco/mtc-toys/internal/cart"
	ordersvc "github.com/masstransitco/mtc-toys/internal/orders"
	pkgAuth "github.com/masstransitco/mtc-toys/pkg/auth"
	"github.com/masstransitco/mtc-toys/pkg/config"
	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	"github.com/masstransitco/mtc-toys/pkg/logger"
	"github.com/masstransitco/mtc-toys/pkg/pagination"
)

type fakeCartStore struct {
	docs map[string]string
}

func (s *fakeCartStore) Get(_ context.Context, key string) (string, error) {
	return s.docs[key], nil
}

func (s *fakeCartStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if s.docs == nil {
		s.docs = map[string]string{}
	}
	s.docs[key] = value.(string)
	return nil
}

func (s *fakeCartStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.docs, key)
	}
	return nil
}

func (s *fakeCartStore) CartKey(userID string) string {
	return "ffl:cart:" + userID
}

type fakeOrdersService struct{}

func (fakeOrdersService) ListMine(_ context.Context, _ uuid.UUID, page pagination.Params) (pagination.Page[ordersvc.OrderDTO], error) {
	return pagination.Page[ordersvc.OrderDTO]{Page: page.Page, Limit: page.Limit}, nil
}

func (fakeOrdersService) GetMine(context.Context, uuid.UUID, uuid.UUID) (ordersvc.OrderDTO, error) {
	return ordersvc.OrderDTO{Status: enums.OrderStatusPending}, nil
}

func (fakeOrdersService) GetMineBySession(context.Context, uuid.UUID, string) (ordersvc.OrderDTO, error) {
	return ordersvc.OrderDTO{Status: enums.OrderStatusPaid}, nil
}

func (fakeOrdersService) AdminList(_ context.Context, _ ordersvc.AdminListFilters, page pagination.Params) (pagination.Page[ordersvc.OrderDTO], error) {
	return pagination.Page[ordersvc.OrderDTO]{Page: page.Page, Limit: page.Limit}, nil
}

func (fakeOrdersService) AdminGet(context.Context, uuid.UUID) (ordersvc.OrderDTO, error) {
	return ordersvc.OrderDTO{Status: enums.OrderStatusPaid}, nil
}

func (fakeOrdersService) AdminSetStatus(_ context.Context, _ uuid.UUID, status enums.OrderStatus) (ordersvc.OrderDTO, error) {
	return ordersvc.OrderDTO{Status: status}, nil
}

func (fakeOrdersService) MarkPaid(context.Context, uuid.UUID, string) (bool, error) {
	return true, nil
}

func (fakeOrdersService) MarkCancelled(context.Context, uuid.UUID) (bool, error) {
	return true, nil
}

type fakeAddressService struct{}

func (fakeAddressService) List(context.Context, uuid.UUID) ([]models.Address, error) {
	return []models.Address{}, nil
}

func (fakeAddressService) Create(context.Context, uuid.UUID, addresssvc.Input) (*models.Address, error) {
	return &models.Address{}, nil
}

func (fakeAddressService) Update(context.Context, uuid.UUID, uuid.UUID, addresssvc.Input) (*models.Address, error) {
	return &models.Address{}, nil
}

func (fakeAddressService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (fakeAddressService) SetDefault(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func routerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{
		Secret:            "router-secret-router-secret-router",
		Issuer:            "ffl-api",
		ExpirationMinutes: 15,
	}
	cfg.Admin.Emails = []string{"ops@firstflightlab.com"}
	cfg.Site.PublicURL = "https://firstflightlab.com"
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: zerolog.ErrorLevel})

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{Store: &fakeCartStore{}})
	require.NoError(t, err)

	return NewRouter(RouterParams{
		Config:    cfg,
		Logger:    logg,
		Cart:      cartService,
		Orders:    fakeOrdersService{},
		Addresses: fakeAddressService{},
	})
}

func bearerFor(t *testing.T, cfg *config.Config, email string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  email,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouterPublicProducts(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/public/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "starter-bundle")
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-FFL-Env"))
}

func TestRouterCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterCartWithToken(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, "pilot@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "items")
}

func TestRouterCartAddItem(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	body := strings.NewReader(`{"product_id": "pro-bundle", "quantity": 2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	req.Header.Set("Authorization", bearerFor(t, cfg, "pilot@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "pro-bundle")
}

func TestRouterAdminRejectsNonAdmin(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, "pilot@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterAdminAllowsListedOperator(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, "ops@firstflightlab.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouterOrdersListWithToken(t *testing.T) {
	cfg := routerConfig()
	router := newTestRouter(t, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", bearerFor(t, cfg, "pilot@example.com"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t, routerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
