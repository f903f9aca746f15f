package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/api/middleware"
	productsvc "github.com/Sreenuraj/postqode-nexus/internal/products"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
	"github.com/Sreenuraj/postqode-nexus/pkg/logger"
)

type stubProductService struct {
	productsvc.Service
	deleteCalled bool
	deleteErr    error
	adjustDelta  int
	adjustErr    error
	adjustResp   *productsvc.ProductDTO
}

func (s *stubProductService) DeleteProduct(ctx context.Context, actorID, productID uuid.UUID) error {
	s.deleteCalled = true
	return s.deleteErr
}

func (s *stubProductService) AdjustStock(ctx context.Context, actorID, productID uuid.UUID, delta int) (*productsvc.ProductDTO, error) {
	s.adjustDelta = delta
	return s.adjustResp, s.adjustErr
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func productRequest(method, target string, body []byte, userID string, productID string) *http.Request {
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
	routeCtx := chi.NewRouteContext()
	if productID != "" {
		routeCtx.URLParams.Add("productID", productID)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestDeleteProduct(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing user", func(t *testing.T) {
		req := productRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, "", productID.String())
		rec := httptest.NewRecorder()
		DeleteProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user missing, got %d", rec.Code)
		}
	})

	t.Run("invalid product id", func(t *testing.T) {
		req := productRequest(http.MethodDelete, "/api/v1/products/not-a-uuid", nil, userID.String(), "not-a-uuid")
		rec := httptest.NewRecorder()
		DeleteProduct(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{}
		req := productRequest(http.MethodDelete, "/api/v1/products/"+productID.String(), nil, userID.String(), productID.String())
		rec := httptest.NewRecorder()
		DeleteProduct(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 on success, got %d", rec.Code)
		}
		if !stub.deleteCalled {
			t.Fatalf("expected DeleteProduct to be invoked")
		}
	})
}

func TestAdjustStock(t *testing.T) {
	logg := testLogger()
	userID := uuid.New()
	productID := uuid.New()

	t.Run("missing delta", func(t *testing.T) {
		req := productRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/stock", []byte(`{}`), userID.String(), productID.String())
		rec := httptest.NewRecorder()
		AdjustStock(&stubProductService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for missing delta, got %d", rec.Code)
		}
	})

	t.Run("insufficient stock maps to 409", func(t *testing.T) {
		stub := &stubProductService{
			adjustErr: pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock"),
		}
		req := productRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/stock", []byte(`{"delta":-5}`), userID.String(), productID.String())
		rec := httptest.NewRecorder()
		AdjustStock(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if stub.adjustDelta != -5 {
			t.Fatalf("expected delta -5 passed through, got %d", stub.adjustDelta)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubProductService{adjustResp: &productsvc.ProductDTO{ID: productID, Quantity: 3}}
		req := productRequest(http.MethodPost, "/api/v1/products/"+productID.String()+"/stock", []byte(`{"delta":3}`), userID.String(), productID.String())
		rec := httptest.NewRecorder()
		AdjustStock(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
