package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/api/middleware"
	"github.com/Sreenuraj/postqode-nexus/internal/orders"
	"github.com/Sreenuraj/postqode-nexus/pkg/enums"
)

type stubOrderService struct {
	orders.Service
	createInput  orders.CreateOrderInput
	createResp   *orders.OrderDTO
	cancelActor  uuid.UUID
	cancelCalled bool
	listInput    orders.ListOrdersInput
}

func (s *stubOrderService) CreateOrder(ctx context.Context, userID uuid.UUID, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	s.createInput = input
	return s.createResp, nil
}

func (s *stubOrderService) CancelOrder(ctx context.Context, actorID, orderID uuid.UUID) (*orders.OrderDTO, error) {
	s.cancelCalled = true
	s.cancelActor = actorID
	return &orders.OrderDTO{ID: orderID, Status: enums.OrderStatusCancelled}, nil
}

func (s *stubOrderService) ListOrders(ctx context.Context, input orders.ListOrdersInput) (*orders.OrderListResult, error) {
	s.listInput = input
	return &orders.OrderListResult{}, nil
}

func orderRequest(method, target string, body []byte, userID, role, orderID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	ctx := req.Context()
	if userID != "" {
		ctx = middleware.WithUserID(ctx, userID)
	}
	if role != "" {
		ctx = middleware.WithRole(ctx, role)
	}
	routeCtx := chi.NewRouteContext()
	if orderID != "" {
		routeCtx.URLParams.Add("orderID", orderID)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestCreateOrder(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("rejects zero quantity", func(t *testing.T) {
		body := []byte(`{"product_id":"` + productID.String() + `","quantity":0}`)
		req := orderRequest(http.MethodPost, "/api/v1/orders", body, userID.String(), string(enums.UserRoleUser), "")
		rec := httptest.NewRecorder()
		CreateOrder(&stubOrderService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero quantity, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubOrderService{createResp: &orders.OrderDTO{ID: uuid.New(), Status: enums.OrderStatusPending}}
		body := []byte(`{"product_id":"` + productID.String() + `","quantity":3}`)
		req := orderRequest(http.MethodPost, "/api/v1/orders", body, userID.String(), string(enums.UserRoleUser), "")
		rec := httptest.NewRecorder()
		CreateOrder(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if stub.createInput.ProductID != productID || stub.createInput.Quantity != 3 {
			t.Fatalf("unexpected create input %+v", stub.createInput)
		}
	})
}

func TestCancelOrderPassesCaller(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()
	callerID := uuid.New()

	stub := &stubOrderService{}
	req := orderRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", nil, callerID.String(), string(enums.UserRoleUser), orderID.String())
	rec := httptest.NewRecorder()
	CancelOrder(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.cancelCalled || stub.cancelActor != callerID {
		t.Fatalf("expected cancel for caller %s, called=%v actor=%s", callerID, stub.cancelCalled, stub.cancelActor)
	}
}

func TestListOrdersScopesNonAdminsToThemselves(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	otherID := uuid.New()

	t.Run("user cannot list other accounts", func(t *testing.T) {
		stub := &stubOrderService{}
		req := orderRequest(http.MethodGet, "/api/v1/orders?user_id="+otherID.String(), nil, userID.String(), string(enums.UserRoleUser), "")
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listInput.UserID == nil || *stub.listInput.UserID != userID {
			t.Fatalf("expected listing scoped to caller, got %v", stub.listInput.UserID)
		}
	})

	t.Run("admin may target any account", func(t *testing.T) {
		stub := &stubOrderService{}
		req := orderRequest(http.MethodGet, "/api/v1/orders?user_id="+otherID.String(), nil, userID.String(), string(enums.UserRoleAdmin), "")
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listInput.UserID == nil || *stub.listInput.UserID != otherID {
			t.Fatalf("expected admin-chosen scope, got %v", stub.listInput.UserID)
		}
	})

	t.Run("admin omitting user sees everything", func(t *testing.T) {
		stub := &stubOrderService{}
		req := orderRequest(http.MethodGet, "/api/v1/orders", nil, userID.String(), string(enums.UserRoleAdmin), "")
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listInput.UserID != nil {
			t.Fatalf("expected unscoped listing for admin, got %v", stub.listInput.UserID)
		}
	})
}
