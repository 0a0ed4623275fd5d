package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/jotvibfeng/development-platforms-ca/internal/server/api"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/config"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/crypto"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/middleware"
	"github.com/jotvibfeng/development-platforms-ca/internal/server/service"
	svcmocks "github.com/jotvibfeng/development-platforms-ca/internal/server/service/mocks"
	serr "github.com/jotvibfeng/development-platforms-ca/internal/shared/errors"
	"github.com/jotvibfeng/development-platforms-ca/internal/shared/logger"
)

// NewTestHandler создаёт Handler с моками и конфигом через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, *svcmocks.MockUsersRepo, *svcmocks.MockArticlesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUsersRepo(ctrl)
	articles := svcmocks.NewMockArticlesRepo(ctrl)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Issuer:    "issuer",
			Audience:  "audience",
			AccessTTL: 1 * time.Minute,
			JWT: config.JWTConfig{
				Algorithm:  "HS256",
				SigningKey: "supersecretkeysupersecretkey123456", // >= 32
			},
		},
		Password: config.PasswordConfig{
			Bcrypt: config.BcryptConfig{Cost: 4}, // минимум, чтобы тесты не тормозили
		},
	}

	svc := service.NewServices(service.Repositories{Users: users, Articles: articles}, cfg)

	verifier := middleware.NewJWTVerifier(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		AccessTTL:  cfg.Auth.AccessTTL,
	})
	log := logger.NewHTTPLogger()

	return api.NewHandler(svc, log, verifier), users, articles
}

func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if rec.Body.String() == "" {
		t.Fatalf("expected error body, got empty")
	}
}

func TestHandler_Register_Success(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	email := "test@example.com"
	password := "StrongPass123!"

	users.EXPECT().
		Create(gomock.Any(), email, gomock.Any()).
		DoAndReturn(func(ctx context.Context, gotEmail, gotHash string) (int64, error) {
			if gotHash == "" {
				t.Fatalf("expected non-empty password hash")
			}
			return 42, nil
		})

	body, _ := json.Marshal(api.RegisterRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d, body=%q", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp api.RegisterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != 42 {
		t.Fatalf("expected user id 42, got %d", resp.User.ID)
	}
	if resp.User.Email != email {
		t.Fatalf("expected email %q, got %q", email, resp.User.Email)
	}
}

func TestHandler_Register_AlreadyExists(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	email := "test@example.com"
	password := "StrongPass123!"

	users.EXPECT().
		Create(gomock.Any(), email, gomock.Any()).
		Return(int64(0), serr.ErrAlreadyExists)

	body, _ := json.Marshal(api.RegisterRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestHandler_Login_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestHandler_Login_Success(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	email := "test@example.com"
	password := "StrongPass123!"

	hash, err := crypto.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users.EXPECT().
		GetByEmail(gomock.Any(), email).
		Return(int64(42), hash, nil)

	body, _ := json.Marshal(api.LoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp api.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected non-empty token, got %+v", resp)
	}
	if resp.User.ID != 42 {
		t.Fatalf("expected user id 42, got %d", resp.User.ID)
	}
}

// Несуществующий email и неверный пароль должны выглядеть одинаково
func TestHandler_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	email := "test@example.com"
	password := "StrongPass123!"

	hash, err := crypto.HashPassword("AnotherPass123!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users.EXPECT().
		GetByEmail(gomock.Any(), email).
		Return(int64(42), hash, nil)
	users.EXPECT().
		GetByEmail(gomock.Any(), "nobody@example.com").
		Return(int64(0), "", serr.ErrNotFound)

	codes := make([]int, 0, 2)
	bodies := make([]string, 0, 2)
	for _, e := range []string{email, "nobody@example.com"} {
		body, _ := json.Marshal(api.LoginRequest{Email: e, Password: password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		codes = append(codes, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	for _, code := range codes {
		if code != http.StatusUnauthorized {
			t.Fatalf("expected %d, got %d", http.StatusUnauthorized, code)
		}
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("wrong password and unknown email must be indistinguishable: %q vs %q", bodies[0], bodies[1])
	}
}
