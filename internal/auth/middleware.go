package auth

import (
	"strings"

	"portal-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxClaimsKey = "claims"
)

// JWTMiddleware token'ı önce cookie'den okur, yoksa Authorization header'ına bakar.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(TokenCookieName)

		if tokenStr == "" {
			authHeader := c.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				tokenStr = parts[1]
			}
		}

		if tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Oturum token'ı eksik")
		}

		claims, err := ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxClaimsKey, claims)

		return c.Next()
	}
}

// SessionUserID middleware'in koyduğu kullanıcı id'sini döndürür.
func SessionUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(CtxUserIDKey).(uint); ok {
		return id
	}
	return 0
}
