package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/pkg/jwt"
	"github.com/Dashulik10/Hostel-Organization/pkg/redis"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

const principalKey = "principal"

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token> and injects the caller's principal
// into the context. Revoked tokens (blacklisted jti) are rejected.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set(principalKey, &policy.Principal{UserID: claims.UserID, Role: claims.Role})
		c.Next()
	}
}

// GetPrincipal reads the authenticated caller from the context; nil
// when the request did not pass JWTAuth.
func GetPrincipal(c *gin.Context) *policy.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*policy.Principal)
	return p
}

// RequireWorker rejects callers without the worker role.
func RequireWorker() gin.HandlerFunc {
	return requireRole(model.RoleWorker)
}

// RequireStudent rejects callers without the student role.
func RequireStudent() gin.HandlerFunc {
	return requireRole(model.RoleStudent)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}
		if p.Role != role {
			response.Forbidden(c, 10003, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
