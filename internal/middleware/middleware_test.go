package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
	ConfigureJWT("test-secret-0123456789", time.Hour)
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.MustGet(ContextUserID),
			"username": c.GetString(ContextUsername),
			"role":     c.GetString(ContextRole),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, expires, err := GenerateToken(7, "dispatch1", "dispatcher")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expected expiry in the future, got %v", expires)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "dispatch1" || claims.Role != "dispatcher" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateToken_RejectsOtherSecret(t *testing.T) {
	claims := Claims{UserID: 1, Role: "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret-value"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter()

	w := doRequest(r, "GET", "/protected", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing header: expected 401, got %d", w.Code)
	}

	w = doRequest(r, "GET", "/protected", map[string]string{"Authorization": "Bearer garbage"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}

	token, _, _ := GenerateToken(3, "ops", "viewer")
	w = doRequest(r, "GET", "/protected", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"username":"ops"`) {
		t.Errorf("expected username in context, got %s", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole("admin"))

	viewer, _, _ := GenerateToken(3, "ops", "viewer")
	w := doRequest(r, "GET", "/protected", map[string]string{"Authorization": "Bearer " + viewer})
	if w.Code != http.StatusForbidden {
		t.Errorf("viewer: expected 403, got %d", w.Code)
	}

	admin, _, _ := GenerateToken(1, "root", "admin")
	w = doRequest(r, "GET", "/protected", map[string]string{"Authorization": "Bearer " + admin})
	if w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := doRequest(r, "GET", "/", map[string]string{"X-Request-ID": "abc-123"})
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected caller id echoed, got %q", got)
	}
	if w.Body.String() != "abc-123" {
		t.Errorf("expected id in context, got %q", w.Body.String())
	}

	w = doRequest(r, "GET", "/", map[string]string{"X-Request-ID": strings.Repeat("x", 100)})
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("expected generated uuid for oversized id, got %q", got)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example.com/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, "GET", "/", map[string]string{"Origin": "https://app.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected allowed origin echoed, got %q", got)
	}

	w = doRequest(r, "GET", "/", map[string]string{"Origin": "https://evil.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS header for unknown origin, got %q", got)
	}

	w = doRequest(r, "OPTIONS", "/", map[string]string{"Origin": "https://app.example.com"})
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight: expected 204, got %d", w.Code)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, "GET", "/", map[string]string{"Origin": "http://localhost:3000"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected any origin echoed, got %q", got)
	}
}
