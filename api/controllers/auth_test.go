package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Sreenuraj/postqode-nexus/internal/auth"
	"github.com/Sreenuraj/postqode-nexus/internal/users"
	pkgerrors "github.com/Sreenuraj/postqode-nexus/pkg/errors"
)

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
	last auth.LoginRequest
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.last = req
	return s.resp, s.err
}

type stubRegistrar struct {
	resp   *auth.RegisterResponse
	err    error
	called bool
}

func (s *stubRegistrar) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	s.called = true
	return s.resp, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Username: "avery", Email: "avery@example.com"}
	svc := &stubAuthService{resp: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         user,
	}}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"avery","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.last.Username != "avery" {
		t.Fatalf("expected login request to carry username, got %q", svc.last.Username)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload, got %q", envelope.Data.AccessToken)
	}
	if envelope.Data.User == nil || envelope.Data.User.Username != "avery" {
		t.Fatalf("expected user in payload, got %+v", envelope.Data.User)
	}
}

func TestAuthLoginRejectsMalformedBody(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginPropagatesUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := AuthLogin(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(`{"username":"avery","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRegisterLogsInAfterCreate(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), Username: "blake"}
	reg := &stubRegistrar{resp: &auth.RegisterResponse{User: user}}
	svc := &stubAuthService{resp: &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         user,
	}}
	handler := AuthRegister(reg, svc, nil)

	body := `{"username":"blake","email":"blake@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if !reg.called {
		t.Fatalf("expected register to be invoked")
	}
	if svc.last.Username != "blake" {
		t.Fatalf("expected follow-up login for new user, got %q", svc.last.Username)
	}
}

func TestAuthRegisterConflict(t *testing.T) {
	reg := &stubRegistrar{err: pkgerrors.New(pkgerrors.CodeConflict, "username already in use")}
	handler := AuthRegister(reg, &stubAuthService{}, nil)

	body := `{"username":"blake","email":"blake@example.com","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}
