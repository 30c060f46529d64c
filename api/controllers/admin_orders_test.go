package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/masstransitco/mtc-toys/internal/orders"
	"github.com/masstransitco/mtc-toys/pkg/enums"
)

func TestAdminListOrdersParsesFilters(t *testing.T) {
	svc := &stubOrderQueryService{order: ordersvc.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPaid}}
	handler := AdminListOrders(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=paid&search=pilot%40example.com&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastFilters.Status == nil || *svc.lastFilters.Status != enums.OrderStatusPaid {
		t.Fatalf("expected paid status filter, got %v", svc.lastFilters.Status)
	}
	if svc.lastFilters.Query != "pilot@example.com" {
		t.Fatalf("unexpected query %q", svc.lastFilters.Query)
	}
	if svc.lastPage.Page != 2 || svc.lastPage.Limit != 10 {
		t.Fatalf("unexpected page params %+v", svc.lastPage)
	}
}

func TestAdminListOrdersAcceptsLegacyQueryParam(t *testing.T) {
	svc := &stubOrderQueryService{order: ordersvc.OrderDTO{ID: uuid.New()}}
	handler := AdminListOrders(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?q=FFL-1042", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilters.Query != "FFL-1042" {
		t.Fatalf("unexpected query %q", svc.lastFilters.Query)
	}
}

func TestAdminListOrdersWithoutFilters(t *testing.T) {
	svc := &stubOrderQueryService{order: ordersvc.OrderDTO{ID: uuid.New()}}
	handler := AdminListOrders(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastFilters.Status != nil || svc.lastFilters.Query != "" {
		t.Fatalf("expected empty filters, got %+v", svc.lastFilters)
	}
}

func TestAdminListOrdersRejectsUnknownStatus(t *testing.T) {
	handler := AdminListOrders(&stubOrderQueryService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=teleported", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminGetOrder(t *testing.T) {
	svc := &stubOrderQueryService{order: ordersvc.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusShipped}}
	handler := AdminGetOrder(svc, nil)

	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/"+orderID.String(), nil)
	req = withRouteParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastOrderID != orderID {
		t.Fatalf("unexpected lookup id %s", svc.lastOrderID)
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	svc := &stubOrderQueryService{order: ordersvc.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPaid}}
	handler := AdminUpdateOrderStatus(svc, nil)

	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/"+orderID.String()+"/status",
		bytes.NewBufferString(`{"status": "shipped"}`))
	req = withRouteParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if svc.lastOrderID != orderID || svc.lastStatus != enums.OrderStatusShipped {
		t.Fatalf("unexpected update args %s %s", svc.lastOrderID, svc.lastStatus)
	}
}

func TestAdminUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	svc := &stubOrderQueryService{}
	handler := AdminUpdateOrderStatus(svc, nil)

	orderID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/"+orderID.String()+"/status",
		bytes.NewBufferString(`{"status": "lost-in-flight"}`))
	req = withRouteParam(req, "orderId", orderID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if svc.lastOrderID != uuid.Nil {
		t.Fatal("service should not have been called")
	}
}

func TestAdminUpdateOrderStatusRejectsMalformedID(t *testing.T) {
	handler := AdminUpdateOrderStatus(&stubOrderQueryService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/orders/nope/status",
		bytes.NewBufferString(`{"status": "paid"}`))
	req = withRouteParam(req, "orderId", "nope")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
