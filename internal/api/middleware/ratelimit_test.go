package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func hit(t *testing.T, mw echo.MiddlewareFunc, ip string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":1234"
	c := e.NewContext(req, httptest.NewRecorder())
	return mw(func(c echo.Context) error { return nil })(c)
}

func TestRateLimit_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Close()
	mw := RateLimit(rl)

	for i := 0; i < 2; i++ {
		if err := hit(t, mw, "10.0.0.1"); err != nil {
			t.Fatalf("request %d within burst rejected: %v", i, err)
		}
	}
	if code := httpCode(t, hit(t, mw, "10.0.0.1")); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if err := hit(t, mw, "10.0.0.2"); err != nil {
		t.Fatalf("other IP must have its own bucket: %v", err)
	}
}

func TestRateLimiter_SweepsIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Close()

	rl.allow("10.0.0.1")
	rl.sweep(time.Now().Add(maxIdle + time.Second))

	rl.mu.Lock()
	n := len(rl.visitors)
	rl.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected idle visitor to be swept, %d left", n)
	}
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Close()
	rl.Close()
}
