package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func testClaims() *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Dr. Chen",
		Roles: []string{"clinician"},
	}
}

func runMiddleware(mw echo.MiddlewareFunc, req *http.Request) (echo.Context, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error { return nil })(c)
	return c, err
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, testClaims())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	c, err := runMiddleware(JWTMiddleware(testSecret), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := c.Request().Context()
	if got := UserIDFromContext(ctx); got != "user-42" {
		t.Errorf("expected user-42, got %q", got)
	}
	if got := NameFromContext(ctx); got != "Dr. Chen" {
		t.Errorf("expected Dr. Chen, got %q", got)
	}
	if roles := RolesFromContext(ctx); len(roles) != 1 || roles[0] != "clinician" {
		t.Errorf("unexpected roles: %v", roles)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := runMiddleware(JWTMiddleware(testSecret), req)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc123")
	_, err := runMiddleware(JWTMiddleware(testSecret), req)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := signToken(t, "another-secret-another-secret-xx", testClaims())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err := runMiddleware(JWTMiddleware(testSecret), req)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	claims := testClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	token := signToken(t, testSecret, claims)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err := runMiddleware(JWTMiddleware(testSecret), req)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestDevAuthMiddleware_InjectsDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, err := runMiddleware(DevAuthMiddleware(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := c.Request().Context()
	if got := UserIDFromContext(ctx); got != "dev-user" {
		t.Errorf("expected dev-user, got %q", got)
	}
	if uid, _ := c.Get("user_id").(string); uid != "dev-user" {
		t.Errorf("expected user_id on echo context, got %q", uid)
	}
}

func TestRequireRole(t *testing.T) {
	token := signToken(t, testSecret, testClaims())

	chain := func(role string) (echo.Context, error) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		h := JWTMiddleware(testSecret)(RequireRole(role)(func(c echo.Context) error { return nil }))
		return c, h(c)
	}

	if _, err := chain("clinician"); err != nil {
		t.Errorf("clinician role should pass: %v", err)
	}
	_, err := chain("admin")
	assertHTTPStatus(t, err, http.StatusForbidden)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected HTTP %d error, got nil", want)
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != want {
		t.Errorf("expected status %d, got %d", want, httpErr.Code)
	}
}
