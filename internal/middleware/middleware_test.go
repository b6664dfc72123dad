package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"redsocial/internal/config"
	handlers "redsocial/internal/handler"
)

func testChain(cfg *config.Config, final http.Handler) http.Handler {
	return Chain(
		final,
		LoggingMiddleware,
		CacheControlMiddleware,
		AuthMiddleware(cfg),
		CORSMiddleware,
	)
}

func TestChain_TokenRejectionCarriesCORSHeaders(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}

	chain := testChain(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()

	chain.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestChain_TokenlessRequestPassesThrough(t *testing.T) {
	cfg := &config.Config{JWTSecretKey: "test-secret-key"}

	var reached bool
	chain := testChain(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		_, hasIdentity := r.Context().Value(handlers.ContextUsername).(string)
		assert.False(t, hasIdentity)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rr := httptest.NewRecorder()

	chain.ServeHTTP(rr, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store, no-cache, must-revalidate, private", rr.Header().Get("Cache-Control"))
}
