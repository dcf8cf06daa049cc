package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	auction "auction-backend/internal/auctionService"
	"auction-backend/internal/auth"
	"auction-backend/internal/config"
	"auction-backend/internal/server"
	"auction-backend/internal/storage/memory"
	user "auction-backend/internal/userService"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// SetupTestServer wires the full router against an in-memory store, the same
// way main does against the configured backend.
func SetupTestServer(t *testing.T) (*gin.Engine, *memory.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "integration-test-secret",
			AccessExpiryHours: 1,
			RefreshExpiryDays: 1,
			Issuer:            "auction-backend",
		},
		CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
	}

	store := memory.NewStore()
	tokens := auth.NewTokenManager(cfg.JWT)
	auctionService := auction.NewAuctionService(store)
	userService := user.NewUserService(store, tokens)

	return server.SetupRouter(cfg, tokens, auctionService, userService), store
}

// Envelope mirrors the uniform response shape
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    json.RawMessage `json:"meta"`
}

// ExecuteRequest runs a request through the router. A non-empty token is sent
// as a bearer Authorization header; a nil body sends no payload.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body any, token string) (Envelope, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Host = "api.test"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env Envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return env, w
}

// DataMap decodes the envelope data into a generic map
func DataMap(t *testing.T, env Envelope) map[string]any {
	t.Helper()

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// DataList decodes the envelope data into a slice of generic maps
func DataList(t *testing.T, env Envelope) []map[string]any {
	t.Helper()

	var data []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

// RegisterAndLogin creates an account through the API and returns its id plus
// the issued token pair.
func RegisterAndLogin(t *testing.T, router *gin.Engine, username string) (uint, string, string) {
	t.Helper()

	env, w := ExecuteRequest(t, router, "POST", "/api/v1/auth/register/", map[string]any{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "correct-horse",
		"password_confirm": "correct-horse",
	}, "")
	require.Equal(t, 201, w.Code, "register failed: %s", env.Message)
	userID := uint(DataMap(t, env)["id"].(float64))

	env, w = ExecuteRequest(t, router, "POST", "/api/v1/auth/login/", map[string]any{
		"username": username,
		"password": "correct-horse",
	}, "")
	require.Equal(t, 200, w.Code, "login failed: %s", env.Message)

	tokens := DataMap(t, env)
	return userID, tokens["access"].(string), tokens["refresh"].(string)
}
