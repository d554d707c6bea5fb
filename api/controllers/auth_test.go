package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/internal/accounts"
	"github.com/lucifer43562/wastelink-backend/internal/auth"
	pkgAuth "github.com/lucifer43562/wastelink-backend/pkg/auth"
	"github.com/lucifer43562/wastelink-backend/pkg/auth/session"
	"github.com/lucifer43562/wastelink-backend/pkg/config"
	"github.com/lucifer43562/wastelink-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "controller-test-secret", Issuer: "wastelink-test", ExpirationMinutes: 15, RefreshTokenTTLMinutes: 43200}
}

type stubAuthService struct {
	resp *auth.LoginResponse
	err  error
	got  auth.LoginRequest
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.got = req
	return s.resp, s.err
}

type stubRegisterService struct {
	resp *auth.LoginResponse
	err  error
}

func (s stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.resp, s.err
}

type stubRotator struct {
	newAccessID string
	newToken    string
	rotateErr   error
	revokedID   string
	revokeErr   error
}

func (s *stubRotator) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return s.newAccessID, s.newToken, nil
}

func (s *stubRotator) Revoke(ctx context.Context, accessID string) error {
	s.revokedID = accessID
	return s.revokeErr
}

func TestAuthLoginSuccess(t *testing.T) {
	resp := &auth.LoginResponse{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         &accounts.AccountDTO{ID: uuid.New(), Email: "alma@example.com", Role: "customer"},
	}
	svc := &stubAuthService{resp: resp}
	handler := AuthLogin(svc, testLogger())

	body := `{"email":"alma@example.com","password":"Secret#1","role":"customer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("X-WL-Token"); got != "access-token" {
		t.Fatalf("expected access token header got %q", got)
	}
	if svc.got.Email != "alma@example.com" || svc.got.Role != "customer" {
		t.Fatalf("payload not forwarded: %+v", svc.got)
	}

	var envelope struct {
		Data struct {
			AccessToken string               `json:"access_token"`
			User        *accounts.AccountDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User == nil || envelope.Data.User.Email != "alma@example.com" {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginMissingFields(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"alma@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestAuthLoginNilService(t *testing.T) {
	handler := AuthLogin(nil, testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}

func TestAuthRegisterCreated(t *testing.T) {
	resp := &auth.LoginResponse{
		AccessToken:  "fresh-token",
		RefreshToken: "fresh-refresh",
		User:         &accounts.AccountDTO{ID: uuid.New(), Email: "new@example.com", Role: "company"},
	}
	handler := AuthRegister(stubRegisterService{resp: resp}, testLogger())

	body := `{"name":"Green Hauling","email":"new@example.com","password":"Secret#12","role":"company"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if got := rec.Header().Get("X-WL-Token"); got != "fresh-token" {
		t.Fatalf("expected access token header got %q", got)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := testJWTConfig()
	accessID := uuid.NewString()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   "customer",
		JTI:    accessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{}
	handler := AuthLogout(rotator, cfg, testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rotator.revokedID != accessID {
		t.Fatalf("expected revoke of %s got %s", accessID, rotator.revokedID)
	}
}

func TestAuthLogoutMissingToken(t *testing.T) {
	handler := AuthLogout(&stubRotator{}, testJWTConfig(), testLogger())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefreshIssuesNewPair(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	oldAccessID := uuid.NewString()
	expired, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   "company",
		JTI:    oldAccessID,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{newAccessID: uuid.NewString(), newToken: "rotated-refresh"}
	handler := AuthRefresh(rotator, cfg, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{"refresh_token":"old-refresh"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data refreshResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "rotated-refresh" {
		t.Fatalf("expected rotated refresh token got %q", envelope.Data.RefreshToken)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, envelope.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.UserID != userID || claims.Role != "company" {
		t.Fatalf("identity not carried over: %+v", claims)
	}
	if claims.ID != rotator.newAccessID {
		t.Fatalf("expected new session id %s got %s", rotator.newAccessID, claims.ID)
	}
}

func TestAuthRefreshRejectsBadRefreshToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   "customer",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := AuthRefresh(rotator, cfg, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{"refresh_token":"stolen"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
