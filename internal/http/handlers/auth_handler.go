package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginPayload struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (p loginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// POST /api/login/
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var p loginPayload
	fe, err := decodeJSON(c, &p)
	if err != nil {
		return badBody(c)
	}
	if fe == nil {
		fe = validate.FieldErrors{}
	}
	if verr := p.Validate(); verr != nil {
		fe.Merge(validate.FromRules(verr))
	}
	if len(fe) > 0 {
		return fieldErrors(c, fe)
	}

	key, err := h.Auth.Login(*p.Email, *p.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": *p.Email})
		return detailMsg(c, fiber.StatusUnauthorized, services.ErrBadCreds.Error())
	}
	if err != nil {
		return err
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": *p.Email})
	return c.JSON(fiber.Map{"token": key})
}
