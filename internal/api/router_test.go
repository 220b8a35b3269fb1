package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/task-management-api/internal/infrastructure/config"
)

// One router for the whole test: the prometheus middleware registers its
// collectors in the default registry and a second registration panics.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	// The driver connects lazily, so an unreachable URI is fine for routes
	// that never touch the store.
	client, err := mongo.Connect(context.Background(),
		options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	srv := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		JWTSecret: base64.StdEncoding.EncodeToString([]byte("router-test-key")),
		JWTTTL:    time.Hour,
	}

	e, err := NewRouter(client.Database("task_management_test"), rdb, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return e
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("liveness is open", func(t *testing.T) {
		if rec := do(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("metrics is open", func(t *testing.T) {
		if rec := do(http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("anonymous task access is rejected", func(t *testing.T) {
		for _, target := range []string{"/tasks", "/tasks/abc", "/tasks/author/a@x.com"} {
			rec := do(http.MethodGet, target, "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("%s: expected 401, got %d", target, rec.Code)
			}
		}
	})

	t.Run("garbage bearer token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("registration validates before touching the store", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth/registration",
			`{"username":"alice","email":"not-an-email","password":"pw"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var v struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if v.Field != "email" {
			t.Fatalf("expected field email, got %q", v.Field)
		}
	})

	t.Run("unknown route renders the envelope", func(t *testing.T) {
		rec := do(http.MethodGet, "/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "message") {
			t.Fatalf("expected envelope body, got %q", rec.Body.String())
		}
	})
}
