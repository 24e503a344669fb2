package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
)

func TestRemainingQuota(t *testing.T) {
	cases := []struct {
		max   int
		count int64
		want  int
	}{
		{10, 1, 9},
		{10, 10, 0},
		{10, 11, 0},
		{10, 25, 0},
		{1, 1, 0},
	}
	for _, tc := range cases {
		if got := remainingQuota(tc.max, tc.count); got != tc.want {
			t.Errorf("remainingQuota(%d, %d) = %d, want %d", tc.max, tc.count, got, tc.want)
		}
	}
}

func TestRateLimitNilRedisPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimit(nil, 1, 0, KeyByIP()))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: code %d", i, w.Code)
		}
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/pedidos/pedido", nil)
		c.Set("real_ip", "203.0.113.7")
		return c
	}

	if got := KeyByIP()(newCtx()); got != "rl:ip:203.0.113.7" {
		t.Fatalf("KeyByIP = %q", got)
	}
	if got := KeyByIPAndPath()(newCtx()); got != "rl:path:/pedidos/pedido:ip:203.0.113.7" {
		t.Fatalf("KeyByIPAndPath = %q", got)
	}
	// anonymous requests fall back to IP
	if got := KeyByActor()(newCtx()); got != "rl:user:anon:ip:203.0.113.7" {
		t.Fatalf("KeyByActor anon = %q", got)
	}

	c := newCtx()
	c.Set(CtxActorKey, &entity.User{ID: 42})
	if got := KeyByActor()(c); got != "rl:user:42" {
		t.Fatalf("KeyByActor = %q", got)
	}
}
