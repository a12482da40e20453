package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glowdesk/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userID"), "tenantId": c.GetString("tenantID")})
	})
	return r
}

func doAuthRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issueCachedToken(t *testing.T) string {
	token, err := utils.GenerateToken("user-1", "tenant-1", time.Hour)
	require.NoError(t, err)

	key := utils.AuthCachePrefix + utils.HashToken(token)
	require.NoError(t, utils.GetAuthCacheClient().Set(context.Background(), key, "user-1", utils.AuthCacheTTL).Err())
	return token
}

func TestJWTAuthMiddlewareAcceptsCachedToken(t *testing.T) {
	r := newAuthRouter(t)
	token := issueCachedToken(t)

	w := doAuthRequest(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
	require.Contains(t, w.Body.String(), "tenant-1")
}

func TestJWTAuthMiddlewareRejectsLoggedOutToken(t *testing.T) {
	r := newAuthRouter(t)
	token := issueCachedToken(t)

	require.Equal(t, http.StatusOK, doAuthRequest(r, token).Code)

	// Logout drops the cached hash; the still-valid JWT must stop working.
	key := utils.AuthCachePrefix + utils.HashToken(token)
	require.NoError(t, utils.GetAuthCacheClient().Del(context.Background(), key).Err())

	require.Equal(t, http.StatusUnauthorized, doAuthRequest(r, token).Code)
}

func TestJWTAuthMiddlewareRejectsUncachedToken(t *testing.T) {
	r := newAuthRouter(t)

	// Signed and unexpired, but never issued through login.
	token, err := utils.GenerateToken("user-1", "tenant-1", time.Hour)
	require.NoError(t, err)

	require.Equal(t, http.StatusUnauthorized, doAuthRequest(r, token).Code)
}

func TestJWTAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newAuthRouter(t)
	require.Equal(t, http.StatusUnauthorized, doAuthRequest(r, "").Code)
}
