package handlers

import (
	"bytes"
	"encoding/json"

	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Invalid token."
	msgInactive      = "User inactive or deleted."
	msgNoPermission  = "You do not have permission to perform this action."
	msgNotFound      = "Not found."
)

// detailMsg is the auth-failure shape: {"detail": "<message>"}.
func detailMsg(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// detailList is the protocol-rejection shape: {"detail": ["<message>", ...]}.
func detailList(c *fiber.Ctx, status int, msgs ...string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msgs})
}

func fieldErrors(c *fiber.Ctx, fe validate.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fe)
}

func badBody(c *fiber.Ctx) error {
	return detailList(c, fiber.StatusBadRequest, "request body must be valid JSON")
}

// decodeJSON unmarshals the request body into a partial-update payload. An
// empty body is a valid empty partial. A type mismatch comes back as field
// errors; a syntax error comes back as err for badBody.
func decodeJSON(c *fiber.Ctx, dst any) (validate.FieldErrors, error) {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		if fe, ok := validate.FromDecode(err); ok {
			return fe, nil
		}
		return nil, err
	}
	return nil, nil
}
