package handlers

import (
	"strings"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

const tokenScheme = "Token "

// RequireToken authenticates the opaque bearer token from the Authorization
// header and attaches the account to the request. Missing credentials, bad
// keys, and inactive accounts are all 401-class failures; they never reach the
// authorization predicates.
func RequireToken(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, tokenScheme) {
			applog.Security(c, "auth.token.missing", nil)
			return detailMsg(c, fiber.StatusUnauthorized, msgNoCredentials)
		}
		key := strings.TrimSpace(strings.TrimPrefix(header, tokenScheme))
		acct, err := auth.AccountByToken(key)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return detailMsg(c, fiber.StatusUnauthorized, msgInvalidToken)
		}
		if !acct.IsActive {
			applog.Security(c, "auth.token.inactive", map[string]any{"account_id": acct.ID})
			return detailMsg(c, fiber.StatusUnauthorized, msgInactive)
		}
		c.Locals("account", acct)
		return c.Next()
	}
}

func currentAccount(c *fiber.Ctx) *domain.Account {
	a, _ := c.Locals("account").(*domain.Account)
	return a
}
