package middleware

import (
	"net/http"
	"strings"

	userRepo "glowdesk/database/repository/user"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware validates the bearer token and puts the authenticated
// user and tenant IDs on the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, tenantID, err := utils.ExtractIDsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// A valid signature is not enough: logout removes the token's hash
		// from the auth cache, revoking it before its JWT expiry.
		cache := utils.GetAuthCacheClient()
		key := utils.AuthCachePrefix + utils.HashToken(tokenString)
		if err := cache.Get(c.Request.Context(), key).Err(); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked or expired"})
			return
		}
		cache.Expire(c.Request.Context(), key, utils.AuthCacheTTL)

		c.Set("userID", userID)
		c.Set("tenantID", tenantID)
		c.Next()
	}
}

// RequireRoles loads the authenticated user and rejects the request unless
// their role is one of the allowed ones. Must run after JWTAuthMiddleware.
func RequireRoles(users userRepo.UserRepository, roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		account, err := users.GetByID(userID)
		if err != nil || !account.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found or inactive"})
			return
		}
		if !allowed[account.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Set("userRole", account.Role)
		c.Next()
	}
}
