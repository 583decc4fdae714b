package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/auth"
	"github.com/botica/citas-api/internal/core/domain"
)

const testSecret = "secret"

func signToken(t *testing.T, rol domain.Role, ttl time.Duration) string {
	t.Helper()
	tok, err := auth.Issue(&domain.User{ID: 9, Nombre: "Ana", Email: "ana@example.com", Rol: rol}, nil, testSecret, ttl)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func runAuth(t *testing.T, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(testSecret)(func(c echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuth_ValidToken(t *testing.T) {
	c, called, err := runAuth(t, "Bearer "+signToken(t, domain.RoleDoctor, time.Hour))
	if err != nil || !called {
		t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
	}
	claims, ok := ClaimsFrom(c)
	if !ok || claims.ID != 9 || claims.Rol != domain.RoleDoctor {
		t.Fatalf("claims not injected: %+v", claims)
	}
	if _, ok := c.Get(ClaimsKey).(*auth.Claims); !ok {
		t.Fatalf("claims not stored under ClaimsKey")
	}
	if c.Get("role") != nil || c.Get("user_id") != nil {
		t.Fatalf("claims must only be reachable through ClaimsFrom")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, called, err := runAuth(t, "")
	if called || httpCode(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_NotBearer(t *testing.T) {
	_, _, err := runAuth(t, "Basic abc")
	if httpCode(t, err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	cases := map[string]string{
		"garbage": "Bearer not.a.token",
		"expired": "Bearer " + signToken(t, domain.RolePatient, -time.Minute),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, called, err := runAuth(t, header)
			if called || httpCode(t, err) != http.StatusForbidden {
				t.Fatalf("expected 403, got %v", err)
			}
		})
	}
}
