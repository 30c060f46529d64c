package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/masstransitco/mtc-toys/pkg/db/models"
	"github.com/masstransitco/mtc-toys/pkg/enums"
	"github.com/masstransitco/mtc-toys/pkg/pagination"
	"github.com/masstransitco/mtc-toys/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  user_email TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  shipping_address TEXT,
  stripe_session_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	require.NoError(t, db.Exec("DELETE FROM order_items").Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	return db
}

func testAddress() types.ShippingAddress {
	return types.ShippingAddress{
		Street:  "500 Hangar Way",
		City:    "Austin",
		State:   "TX",
		Zip:     "78701",
		Country: "US",
	}
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status enums.OrderStatus) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		UserEmail:       "pilot@example.com",
		Status:          status,
		SubtotalCents:   5999,
		ShippingCents:   799,
		TotalCents:      6798,
		ShippingAddress: testAddress(),
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: "starter-bundle", Name: "Starter Bundle", Quantity: 1, UnitPriceCents: 5999},
		},
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestCreateAndFindByID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		UserEmail:       "pilot@example.com",
		Status:          enums.OrderStatusPending,
		SubtotalCents:   14999,
		ShippingCents:   799,
		TotalCents:      15798,
		ShippingAddress: testAddress(),
		Items: []models.OrderItem{
			{ID: uuid.New(), ProductID: "family-pack", Name: "Family Pack", Quantity: 1, UnitPriceCents: 14999},
		},
	}
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.UserEmail, found.UserEmail)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "family-pack", found.Items[0].ProductID)
	assert.Equal(t, "Austin", found.ShippingAddress.City)
}

func TestFindByIDForUserScopesOwnership(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	order := seedOrder(t, db, owner, enums.OrderStatusPending)

	_, err := repo.FindByIDForUser(ctx, order.ID, owner)
	require.NoError(t, err)

	_, err = repo.FindByIDForUser(ctx, order.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindBySessionIDForUser(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	order := seedOrder(t, db, owner, enums.OrderStatusPending)
	require.NoError(t, repo.SetSessionID(ctx, order.ID, "cs_test_123"))

	found, err := repo.FindBySessionIDForUser(ctx, "cs_test_123", owner)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindBySessionIDForUser(ctx, "cs_test_123", uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListForUserNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	seedOrder(t, db, owner, enums.OrderStatusPaid)
	seedOrder(t, db, owner, enums.OrderStatusPending)
	seedOrder(t, db, uuid.New(), enums.OrderStatusPaid)

	page, err := repo.ListForUser(ctx, owner, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
	for _, row := range page.Items {
		assert.Equal(t, owner, row.UserID)
	}
}

func TestListAdminFiltersAndSearch(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	paid := seedOrder(t, db, uuid.New(), enums.OrderStatusPaid)
	seedOrder(t, db, uuid.New(), enums.OrderStatusPending)

	status := enums.OrderStatusPaid
	page, err := repo.ListAdmin(ctx, AdminListFilters{Status: &status}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, paid.ID, page.Items[0].ID)

	page, err = repo.ListAdmin(ctx, AdminListFilters{Query: "PILOT@"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = repo.ListAdmin(ctx, AdminListFilters{Query: paid.ID.String()}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	page, err = repo.ListAdmin(ctx, AdminListFilters{Query: "no-such-order"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestListAdminPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedOrder(t, db, uuid.New(), enums.OrderStatusPending)
	}

	page, err := repo.ListAdmin(ctx, AdminListFilters{}, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Page)
}

func TestTransitionFromPending(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), enums.OrderStatusPending)

	changed, err := repo.TransitionFromPending(ctx, order.ID, enums.OrderStatusPaid)
	require.NoError(t, err)
	assert.True(t, changed)

	// Second delivery of the same event is a no-op.
	changed, err = repo.TransitionFromPending(ctx, order.ID, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.False(t, changed)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, found.Status)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
