package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityLocalKey is the key under which the authenticated caller's subject
// is stored in Fiber's context locals. Absent for anonymous requests.
const IdentityLocalKey = "identity"

// Identity resolves the caller once per request from the Authorization
// header and threads the resulting identity through context locals, so
// handlers never consult ambient session state themselves. Token issuance
// belongs to the external authentication service; this side only verifies.
//
// An invalid or missing token leaves the request anonymous rather than
// failing it — public read routes accept anonymous callers.
func Identity(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if sub := verify(token, secret); sub != "" {
				c.Locals(IdentityLocalKey, sub)
			}
		}
		return c.Next()
	}
}

// RequireAuth blocks the request unless Identity resolved a caller.
// The global error handler renders the 401 envelope.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, _ := c.Locals(IdentityLocalKey).(string); id == "" {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// CallerIdentity returns the authenticated caller's subject, or "" for
// anonymous requests.
func CallerIdentity(c *fiber.Ctx) string {
	id, _ := c.Locals(IdentityLocalKey).(string)
	return id
}

func verify(token string, secret []byte) string {
	if len(secret) == 0 {
		return ""
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return ""
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
