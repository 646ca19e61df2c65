package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bitbucket.org/mmdatafocus/menu_backend/utils"
	"github.com/gin-gonic/gin"
)

type capturedSession struct {
	called       bool
	userId       int
	hasUser      bool
	restaurantId string
	isAdmin      bool
}

func runSession(t *testing.T, authorization string) (*capturedSession, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var captured capturedSession
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/probe", func(c *gin.Context) {
		ctx := c.Request.Context()
		captured.called = true
		captured.userId, captured.hasUser = utils.GetUserIdFromContext(ctx)
		captured.restaurantId, _ = utils.GetRestaurantIdFromContext(ctx)
		captured.isAdmin, _ = utils.GetIsAdminFromContext(ctx)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return &captured, rec.Code
}

func TestSessionMiddlewareAnonymousPassesThrough(t *testing.T) {
	captured, code := runSession(t, "")
	if code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", code)
	}
	if !captured.called {
		t.Fatal("handler not reached")
	}
	if captured.hasUser {
		t.Fatalf("anonymous request must carry no user id, got %d", captured.userId)
	}
}

func TestSessionMiddlewareOperatorClaims(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")
	token, err := utils.JwtGenerate(42, "Operator", "rest-abc")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	captured, code := runSession(t, "Bearer "+token)
	if code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", code)
	}
	if !captured.hasUser || captured.userId != 42 {
		t.Fatalf("user id not propagated: %+v", captured)
	}
	if captured.restaurantId != "rest-abc" {
		t.Fatalf("restaurant id = %q, want rest-abc", captured.restaurantId)
	}
	if captured.isAdmin {
		t.Fatal("operator must not be admin")
	}
}

func TestSessionMiddlewareAdminClaims(t *testing.T) {
	t.Setenv("TOKEN_HOUR_LIFESPAN", "1")
	token, err := utils.JwtGenerate(1, "Admin", "")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	captured, code := runSession(t, "Bearer "+token)
	if code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", code)
	}
	if !captured.isAdmin {
		t.Fatal("admin claim not propagated")
	}
	if captured.restaurantId != "" {
		t.Fatalf("admin token carries no restaurant, got %q", captured.restaurantId)
	}
}

func TestSessionMiddlewareRejectsGarbageToken(t *testing.T) {
	captured, code := runSession(t, "Bearer not-a-jwt")
	if code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}
	if captured.called {
		t.Fatal("handler must not run on an invalid token")
	}
}
