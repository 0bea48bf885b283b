package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	applog "storefront/internal/log"
)

// NewApp builds the fiber app with all middlewares and routes wired. main and
// the handler tests share it.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ferr *fiber.Error
			if errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError {
				return detailMsg(c, ferr.Code, ferr.Message)
			}
			// Avoid leaking internals
			applog.Error(c, "server.error", err, nil)
			return detailMsg(c, fiber.StatusInternalServerError, "internal server error")
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api")

	api.Post("/accounts/", d.Accounts.Create)
	api.Get("/accounts/", d.Accounts.List)
	api.Get("/accounts/newest/:num/", d.Accounts.Newest)
	api.Patch("/accounts/:id/", RequireToken(d.AuthSvc), d.Accounts.Update)
	api.Patch("/accounts/:id/management/", RequireToken(d.AuthSvc), d.Accounts.Manage)

	// Login throttled against credential stuffing
	api.Post("/login/", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return detailMsg(c, fiber.StatusTooManyRequests, "too many login attempts, please try again later")
		},
	}), d.Auth.Login)

	api.Post("/products/", RequireToken(d.AuthSvc), d.Products.Create)
	api.Get("/products/", d.Products.List)
	api.Get("/products/:id/", d.Products.Get)
	api.Patch("/products/:id/", RequireToken(d.AuthSvc), d.Products.Update)

	app.Use(func(c *fiber.Ctx) error {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	})

	return app
}
