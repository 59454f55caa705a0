package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type stubVerifier map[string]domain.AuthenticatedUser

func (s stubVerifier) Verify(token string) (domain.AuthenticatedUser, error) {
	u, ok := s[token]
	if !ok {
		return domain.AuthenticatedUser{}, errors.New("bad token")
	}
	return u, nil
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthenticate(t *testing.T) {
	v := stubVerifier{"good": {ID: "u1", Role: domain.RoleUser}}

	r := ginext.New("test")
	whoami := func(c *ginext.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.ID)
	}
	r.GET("/required", Authenticate(v, true), whoami)
	r.GET("/optional", Authenticate(v, false), whoami)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		body   string
	}{
		{name: "required with token", path: "/required", token: "good", status: http.StatusOK, body: "u1"},
		{name: "required without token", path: "/required", status: http.StatusUnauthorized},
		{name: "required bad token", path: "/required", token: "bad", status: http.StatusUnauthorized},
		{name: "optional anonymous", path: "/optional", status: http.StatusOK, body: "anonymous"},
		{name: "optional with token", path: "/optional", token: "good", status: http.StatusOK, body: "u1"},
		{name: "optional bad token", path: "/optional", token: "bad", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				withToken(req, tt.token)
			}

			w := serve(r, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"unauthenticated"`)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bearer abc ", token: "abc", ok: true},
		{header: "Basic abc", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer   ", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestRequestID(t *testing.T) {
	r := ginext.New("test")
	r.Use(RequestID(), RequestLogger(newTestLogger(t)))
	r.GET("/x", func(c *ginext.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := ginext.New("test")
	r.Use(Recovery(newTestLogger(t)))
	r.GET("/panic", func(c *ginext.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"internal_error"`)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RPS: 1, Burst: 2, IdleTTL: time.Minute})

	r := ginext.New("test")
	r.GET("/x", rl.Middleware(func(c *ginext.Context) string { return c.GetHeader("X-Key") }), func(c *ginext.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := func(key string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.Header.Set("X-Key", key)
		return r
	}

	assert.Equal(t, http.StatusOK, serve(r, req("a")).Code)
	assert.Equal(t, http.StatusOK, serve(r, req("a")).Code)

	w := serve(r, req("a"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":"rate_limited"`)

	assert.Equal(t, http.StatusOK, serve(r, req("b")).Code)
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RPS: 1, Burst: 1, IdleTTL: time.Minute})
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.limiter("a")
	now = now.Add(2 * time.Minute)
	rl.limiter("b")
	rl.evictIdle()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "a")
	assert.Contains(t, rl.buckets, "b")
}

func TestQuota(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	day := time.Date(2030, 3, 4, 22, 0, 0, 0, time.UTC)
	v := stubVerifier{"good": {ID: "u7", Role: domain.RoleUser}}

	r := ginext.New("test")
	r.POST("/x",
		Authenticate(v, false),
		quota(rdb, QuotaRule{Name: "register", Limit: 2, KeyFn: UserKey}, newTestLogger(t), func() time.Time { return day }),
		func(c *ginext.Context) { c.String(http.StatusOK, "ok") },
	)

	for i := 0; i < 2; i++ {
		w := serve(r, withToken(httptest.NewRequest(http.MethodPost, "/x", nil), "good"))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(r, withToken(httptest.NewRequest(http.MethodPost, "/x", nil), "good"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "7201", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"code":"quota_exceeded"`)

	ttl := mr.TTL("quota:register:u7:20300304")
	assert.Equal(t, 24*time.Hour, ttl)

	// anonymous callers are not counted
	w = serve(r, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuota_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := ginext.New("test")
	r.POST("/x",
		func(c *ginext.Context) { c.Set(userKey, domain.AuthenticatedUser{ID: "u1"}); c.Next() },
		Quota(rdb, QuotaRule{Name: "register", Limit: 1, KeyFn: UserKey}, newTestLogger(t)),
		func(c *ginext.Context) { c.String(http.StatusOK, "ok") },
	)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
