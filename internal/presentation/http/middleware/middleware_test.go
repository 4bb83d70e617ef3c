package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Hour)
	userID, tenantID := uuid.New(), uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, tenantID, []string{"owner"})
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	expired, err := utils.NewJWTManager("secret", -time.Minute).GenerateAccessToken(userID, tenantID, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	router := gin.New()
	router.Use(AuthMiddleware(jwtManager))
	router.GET("/me", func(c *gin.Context) {
		if c.MustGet("user_id") != userID || GetTenantID(c) != tenantID {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name    string
		header  string
		want    int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "Invalid authorization header format"},
		{"bad token", "Bearer abc", http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"valid token", "Bearer " + token, http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.message != "" && !strings.Contains(rec.Body.String(), `"message":"`+tt.message+`"`) {
				t.Fatalf("body = %s, want message %q", rec.Body.String(), tt.message)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_roles", strings.Split(c.GetHeader("X-Roles"), ","))
	})
	router.GET("/", RequireRole("owner", "admin"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for roles, want := range map[string]int{"viewer,admin": http.StatusNoContent, "viewer": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Roles", roles)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Errorf("roles %q: status = %d, want %d", roles, rec.Code, want)
		}
	}
}

func TestTenantRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewTenantRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2, EntryTTL: time.Minute})

	tenantA, tenantB := uuid.New(), uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if id, err := uuid.Parse(c.GetHeader("X-Tenant")); err == nil {
			c.Set("tenant_id", id)
		}
	})
	router.Use(rl.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant", tenant)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := call(tenantA.String()); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec := call(tenantA.String())
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("over limit status = %d retry-after = %q", rec.Code, rec.Header().Get("Retry-After"))
	}
	if rec := call(tenantB.String()); rec.Code != http.StatusNoContent {
		t.Fatalf("other tenant limited: %d", rec.Code)
	}
	if rec := call(""); rec.Code != http.StatusNoContent {
		t.Fatalf("request without tenant limited: %d", rec.Code)
	}

	if n := rl.ActiveTenants(); n != 2 {
		t.Fatalf("ActiveTenants() = %d, want 2", n)
	}
	rl.cleanup(time.Now().Add(2 * time.Minute))
	if n := rl.ActiveTenants(); n != 0 {
		t.Fatalf("ActiveTenants() after cleanup = %d, want 0", n)
	}
}

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[key+userID.String()], nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+ikey.UserID.String()] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	for k, v := range r.keys {
		if v.IsExpired() {
			delete(r.keys, k)
		}
	}
	return nil
}

func TestIdempotency(t *testing.T) {
	repo := &memoryIdempotencyRepo{keys: map[string]*entity.IdempotencyKey{}}
	userID := uuid.New()
	calls := 0

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("user_id", userID) })
	router.Use(Idempotency(IdempotencyConfig{Repo: repo}))
	router.POST("/things", func(c *gin.Context) {
		calls++
		if c.Query("fail") != "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"calls": calls})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"calls": calls})
	})

	post := func(path, key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("replays stored response", func(t *testing.T) {
		first := post("/things", "a", `{"x":1}`)
		second := post("/things", "a", `{"x":1}`)
		if second.Header().Get(IdempotencyReplayedHeader) != "true" || second.Body.String() != first.Body.String() {
			t.Fatalf("second response not replayed: %s", second.Body.String())
		}
		if calls != 1 {
			t.Fatalf("handler ran %d times", calls)
		}
	})

	t.Run("rejects different body", func(t *testing.T) {
		if rec := post("/things", "a", `{"x":2}`); rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
	})

	t.Run("does not store failures", func(t *testing.T) {
		before := calls
		post("/things?fail=1", "b", `{}`)
		post("/things?fail=1", "b", `{}`)
		if calls != before+2 {
			t.Fatalf("failed request was replayed")
		}
	})

	t.Run("expired key runs again", func(t *testing.T) {
		repo.keys["a"+userID.String()].ExpiresAt = time.Now().Add(-time.Second)
		before := calls
		rec := post("/things", "a", `{"x":1}`)
		if rec.Header().Get(IdempotencyReplayedHeader) != "" || calls != before+1 {
			t.Fatalf("expired key was replayed")
		}
	})

	t.Run("no key passes through", func(t *testing.T) {
		before := calls
		post("/things", "", `{}`)
		post("/things", "", `{}`)
		if calls != before+2 {
			t.Fatalf("requests without key were deduplicated")
		}
	})
}
