package middleware

import (
	"strings"

	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

const PrincipalKey = "principal"

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(PrincipalKey, claims.Principal())

		c.Next()
	}
}

// GetPrincipal returns the caller set by Auth. ok is false on routes without Auth.
func GetPrincipal(c *drift.Context) (services.Principal, bool) {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(services.Principal); ok {
			return p, true
		}
	}
	return services.Principal{}, false
}

func GetUserID(c *drift.Context) uuid.UUID {
	p, _ := GetPrincipal(c)
	return p.UserID
}
