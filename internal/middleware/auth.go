// Package middleware provides shared request processing: bearer-token
// verification, role enforcement and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles embedded in access tokens. Each maps to one principal collection:
// Users, Admins and Ais respectively.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleAI    = "ai"
)

// Context keys populated by JWTAuth.
const (
	principalKey = "principal_id"
	roleKey      = "role"
)

// JWTAuth returns middleware that validates a Bearer access token and injects
// the token's subject and role claims into the request context. A missing,
// malformed, expired or unverifiable token yields 401; role checks are left
// to RequireRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				// Only HS256 tokens are issued; reject anything else.
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set(principalKey, sub)
			c.Set(roleKey, claims["role"])
			return next(c)
		}
	}
}

// RequireRole enforces that the authenticated principal carries one of the
// given roles. Assumes JWTAuth ran earlier in the chain; a missing or
// mismatched role yields 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(roleKey).(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// PrincipalID returns the record key of the authenticated principal, or ""
// when the request did not pass through JWTAuth.
func PrincipalID(c echo.Context) string {
	id, _ := c.Get(principalKey).(string)
	return id
}
