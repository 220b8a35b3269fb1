package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/core/domain"
)

type stubAuthService struct {
	registered []string
	failWith   error
}

func (s *stubAuthService) Register(_ context.Context, username, email, password string) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	s.registered = append(s.registered, email)
	return "token-for-" + email, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, email, password string) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	return "token-for-" + email, nil
}

// newTestContext builds an echo context with the request validator wired the
// same way the router does it.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/auth/registration",
		`{"username":"alice","email":"alice@example.com","password":"pw"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "token-for-alice@example.com" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if len(svc.registered) != 1 || svc.registered[0] != "alice@example.com" {
		t.Fatalf("service was not called with the registration email")
	}
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/registration",
		`{"username":"alice","email":"not-an-email","password":"pw"}`)
	err := h.Register(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "email" {
		t.Fatalf("expected field email, got %q", ve.Field)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/registration",
		`{"email":"alice@example.com"}`)
	err := h.Register(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodPost, "/auth/registration", `{broken`)
	err := h.Register(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	svc := &stubAuthService{failWith: fmt.Errorf("%w: bob@x.com", domain.ErrEmailTaken)}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(t, http.MethodPost, "/auth/registration",
		`{"username":"bob","email":"bob@x.com","password":"pw"}`)
	err := h.Register(c)

	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to surface, got %v", err)
	}
}

func TestAuthHandler_Authenticate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/authentication",
		`{"email":"carol@example.com","password":"pw"}`)
	if err := h.Authenticate(c); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected token in response")
	}
}

func TestAuthHandler_Authenticate_BadCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{failWith: domain.ErrInvalidCredentials})

	c, _ := newTestContext(t, http.MethodPost, "/auth/authentication",
		`{"email":"carol@example.com","password":"wrong"}`)
	err := h.Authenticate(c)

	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to surface, got %v", err)
	}
}
