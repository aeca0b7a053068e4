package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mock_interview_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func identityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity())
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, util.UserIDFromContext(c))
	})
	return r
}

func TestIdentityReadsHeader(t *testing.T) {
	r := identityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", "user-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "user-42" {
		t.Errorf("user id = %q, want %q", w.Body.String(), "user-42")
	}
}

func TestIdentityTrimsWhitespace(t *testing.T) {
	r := identityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", "  user-42  ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "user-42" {
		t.Errorf("user id = %q, want trimmed %q", w.Body.String(), "user-42")
	}
}

func TestIdentityMissingHeaderIsAnonymous(t *testing.T) {
	r := identityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Body.String() != "anonymous" {
		t.Errorf("user id = %q, want %q", w.Body.String(), "anonymous")
	}
}

func TestIdentityRejectsOverlongHeader(t *testing.T) {
	r := identityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-ID", strings.Repeat("x", 65))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if strings.Contains(w.Body.String(), "xxx") {
		t.Error("response echoes the oversized header value")
	}
}
