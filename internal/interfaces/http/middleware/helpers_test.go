package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockpile/backend/internal/infrastructure/auth"
	"github.com/stockpile/backend/internal/infrastructure/config"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTenant = uuid.MustParse("7d1f2c9e-0b7a-4e51-9d5c-2f1a3b4c5d6e")

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "stockpile-test",
	})
}

func issue(t *testing.T, svc *auth.JWTService, userID int64) *auth.TokenPair {
	t.Helper()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{TenantID: testTenant, UserID: userID, Username: "alice"})
	require.NoError(t, err)
	return pair
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// stubChecker grants the permissions in its set
type stubChecker struct {
	granted map[string]bool
	err     error
	calls   []string
}

func (s *stubChecker) Can(_ context.Context, _ int64, guard, permission string) (bool, error) {
	s.calls = append(s.calls, guard+"/"+permission)
	return s.granted[permission], s.err
}

func httpPost(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
