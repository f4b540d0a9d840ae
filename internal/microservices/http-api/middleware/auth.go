package middleware

import (
	"net/http"
	"slices"
	"strings"

	"skillhub/internal/microservices/http-api/handler"
	"skillhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer JWT and exposes its claims on the gin context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		// format: "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header format"})
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
			return
		}

		c.Set("claims", claims)
		c.Set("subject", claims.Subject)
		c.Set("scopes", claims.Scopes)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireScopes checks the token carries every required scope.
// "*" grants everything, "write:*" grants every write scope.
func RequireScopes(requiredScopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("scopes")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "scopes not found in token"})
			return
		}
		granted, ok := raw.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "invalid scope format"})
			return
		}

		for _, required := range requiredScopes {
			if !scopeGranted(granted, required) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"message":  "insufficient scopes",
					"required": requiredScopes,
				})
				return
			}
		}
		c.Next()
	}
}

func scopeGranted(granted []string, required string) bool {
	if slices.Contains(granted, "*") || slices.Contains(granted, required) {
		return true
	}
	for _, scope := range granted {
		if prefix, ok := strings.CutSuffix(scope, "*"); ok && strings.HasPrefix(required, prefix) {
			return true
		}
	}
	return false
}

// WriteGuard protects write routes with a bearer token holding write:<collection>
func WriteGuard(authService service.AuthService) handler.WriteGuard {
	return func(collection string) gin.HandlersChain {
		return gin.HandlersChain{
			AuthMiddleware(authService),
			RequireScopes("write:" + collection),
		}
	}
}
