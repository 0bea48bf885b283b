package handlers

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/authz"
	applog "storefront/internal/log"
	"storefront/internal/patch"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AccountHandler struct {
	Accounts *services.AccountService
}

type accountCreatePayload struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsSeller  *bool   `json:"is_seller"`
}

func (p accountCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.FirstName, validation.Required, validation.By(validate.MaxLenPtr(50))),
		validation.Field(&p.LastName, validation.Required, validation.By(validate.MaxLenPtr(50))),
		validation.Field(&p.IsSeller, validation.NotNil),
	)
}

// accountUpdatePayload covers both PATCH endpoints. It deliberately carries
// is_active so each endpoint can enforce its own forbidden set over the full
// submitted field list; is_superuser has no payload representation at all.
type accountUpdatePayload struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsSeller  *bool   `json:"is_seller"`
	IsActive  *bool   `json:"is_active"`
}

func (p accountUpdatePayload) fields() patch.Fields {
	return patch.Fields{
		"email":      p.Email != nil,
		"password":   p.Password != nil,
		"first_name": p.FirstName != nil,
		"last_name":  p.LastName != nil,
		"is_seller":  p.IsSeller != nil,
		"is_active":  p.IsActive != nil,
	}
}

func (p accountUpdatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.By(validate.NotBlankPtr), is.Email),
		validation.Field(&p.Password, validation.By(validate.NotBlankPtr)),
		validation.Field(&p.FirstName, validation.By(validate.NotBlankPtr), validation.By(validate.MaxLenPtr(50))),
		validation.Field(&p.LastName, validation.By(validate.NotBlankPtr), validation.By(validate.MaxLenPtr(50))),
	)
}

func (p accountUpdatePayload) toPatch() services.AccountPatch {
	return services.AccountPatch{
		Email:     p.Email,
		Password:  p.Password,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsSeller:  p.IsSeller,
	}
}

// POST /api/accounts/
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var p accountCreatePayload
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

	acct, err := h.Accounts.Register(services.NewAccount{
		Email:     *p.Email,
		Password:  *p.Password,
		FirstName: *p.FirstName,
		LastName:  *p.LastName,
		IsSeller:  *p.IsSeller,
	})
	if errors.Is(err, repos.ErrDuplicateEmail) {
		return fieldErrors(c, validate.FieldErrors{"email": {"account with this email already exists"}})
	}
	if err != nil {
		return err
	}

	applog.Audit(c, "accounts.create", map[string]any{"account_id": acct.ID})
	return c.Status(fiber.StatusCreated).JSON(newAccountRepr(acct))
}

// GET /api/accounts/
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.Accounts.List()
	if err != nil {
		return err
	}
	return c.JSON(newAccountReprs(accounts))
}

// GET /api/accounts/newest/:num/
func (h *AccountHandler) Newest(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("num"))
	if err != nil || n < 0 {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	}
	accounts, err := h.Accounts.Newest(n)
	if err != nil {
		return err
	}
	return c.JSON(newAccountReprs(accounts))
}

// PATCH /api/accounts/:id/ — self-service update, owner only. is_active is the
// forbidden field on this path; submitting it rejects the whole update.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	target, err := h.Accounts.ByID(c.Params("id"))
	if errors.Is(err, repos.ErrNotFound) {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return err
	}

	requester := currentAccount(c)
	if !authz.AccountOwner(requester, target) {
		applog.Security(c, "accounts.update.denied", map[string]any{"target_id": target.ID})
		return detailMsg(c, fiber.StatusForbidden, msgNoPermission)
	}

	var p accountUpdatePayload
	fe, err := decodeJSON(c, &p)
	if err != nil {
		return badBody(c)
	}
	if len(fe) > 0 {
		return fieldErrors(c, fe)
	}
	if gerr := patch.Guard(p.fields(), "is_active"); gerr != nil {
		applog.Security(c, "accounts.update.forbidden_field", map[string]any{"target_id": target.ID})
		return detailList(c, fiber.StatusBadRequest, gerr.Error())
	}
	if verr := p.Validate(); verr != nil {
		return fieldErrors(c, validate.FromRules(verr))
	}

	updated, err := h.Accounts.Update(target, p.toPatch())
	if errors.Is(err, repos.ErrDuplicateEmail) {
		return fieldErrors(c, validate.FieldErrors{"email": {"account with this email already exists"}})
	}
	if err != nil {
		return err
	}

	applog.Audit(c, "accounts.update", map[string]any{"account_id": updated.ID})
	return c.JSON(newAccountRepr(updated))
}

// PATCH /api/accounts/:id/management/ — activation toggle, superuser only.
// The forbidden set is the inverse of the self-service path: everything except
// is_active is read-only, and is_active itself must be submitted.
func (h *AccountHandler) Manage(c *fiber.Ctx) error {
	requester := currentAccount(c)
	if !authz.Superuser(requester) {
		applog.Security(c, "accounts.manage.denied", map[string]any{"target_id": c.Params("id")})
		return detailMsg(c, fiber.StatusForbidden, msgNoPermission)
	}

	target, err := h.Accounts.ByID(c.Params("id"))
	if errors.Is(err, repos.ErrNotFound) {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return err
	}

	var p accountUpdatePayload
	fe, err := decodeJSON(c, &p)
	if err != nil {
		return badBody(c)
	}
	if len(fe) > 0 {
		return fieldErrors(c, fe)
	}
	submitted := p.fields()
	if gerr := patch.Guard(submitted, "email", "password", "first_name", "last_name", "is_seller"); gerr != nil {
		return detailList(c, fiber.StatusBadRequest, gerr.Error())
	}
	if rerr := patch.Require(submitted, "is_active"); rerr != nil {
		return detailList(c, fiber.StatusBadRequest, rerr.Error())
	}

	updated, err := h.Accounts.SetActive(target, *p.IsActive)
	if err != nil {
		return err
	}

	applog.Audit(c, "accounts.manage", map[string]any{"account_id": updated.ID, "is_active": updated.IsActive})
	return c.JSON(newManagedAccountRepr(updated))
}
