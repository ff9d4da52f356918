// Package middleware holds the gin middleware shared by all services:
// bearer-token authentication and policy-service action authorization.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/shared/infra/clients"
	"github.com/terravest/platform/pkg/utils"
)

// Identity is the authenticated principal extracted from the bearer token.
type Identity struct {
	UserID string
	Role   string
}

const identityKey = "identity"

// IdentityFrom returns the request principal set by Authenticated.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// Authenticated validates the Authorization bearer token (HMAC) and stores
// the principal in the request context.
func Authenticated(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			utils.SendError(c, http.StatusUnauthorized, "missing bearer token", nil)
			c.Abort()
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			utils.SendError(c, http.StatusUnauthorized, "invalid token", err)
			c.Abort()
			return
		}

		userID, _ := claims["userId"].(string)
		role, _ := claims["role"].(string)
		if userID == "" {
			utils.SendError(c, http.StatusUnauthorized, "token missing principal", nil)
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{UserID: userID, Role: role})
		c.Next()
	}
}

// AuthorizeAction checks the named action against the policy service.
// Transport failures deny.
func AuthorizeAction(policy *clients.PolicyClient, action string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			utils.SendError(c, http.StatusUnauthorized, "unauthenticated", nil)
			c.Abort()
			return
		}

		allowed, err := policy.Verify(c.Request.Context(), c.GetHeader("Authorization"), id.UserID, action)
		if err != nil {
			log.Warn("policy verification failed", zap.String("action", action), zap.Error(err))
			utils.SendError(c, http.StatusForbidden, "action not allowed", nil)
			c.Abort()
			return
		}
		if !allowed {
			utils.SendError(c, http.StatusForbidden, "action not allowed", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
