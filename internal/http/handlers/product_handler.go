package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/authz"
	applog "storefront/internal/log"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productCreatePayload struct {
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	IsActive    *bool    `json:"is_active"`
}

func (p productCreatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Price, validation.NotNil, validation.By(validate.NonNegativePrice)),
		validation.Field(&p.Quantity, validation.NotNil, validation.By(validate.PositiveQuantity)),
	)
}

type productUpdatePayload struct {
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	IsActive    *bool    `json:"is_active"`
}

func (p productUpdatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Description, validation.By(validate.NotBlankPtr)),
		validation.Field(&p.Price, validation.By(validate.NonNegativePrice)),
		validation.Field(&p.Quantity, validation.By(validate.PositiveQuantity)),
	)
}

// POST /api/products/ — authenticated sellers only; the product is owned by
// the requester, never by a payload-supplied account.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	requester := currentAccount(c)
	if !authz.SellerWrite(requester) {
		applog.Security(c, "products.create.denied", nil)
		return detailMsg(c, fiber.StatusForbidden, msgNoPermission)
	}

	var p productCreatePayload
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

	prod, err := h.Catalog.Create(requester, services.NewProduct{
		Description: *p.Description,
		Price:       *p.Price,
		Quantity:    *p.Quantity,
		IsActive:    p.IsActive,
	})
	if err != nil {
		return err
	}

	applog.Audit(c, "products.create", map[string]any{"product_id": prod.ID, "seller_id": requester.ID})
	return c.Status(fiber.StatusCreated).JSON(newProductRepr(prod, requester))
}

// GET /api/products/
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return err
	}
	return c.JSON(newProductListReprs(products))
}

// GET /api/products/:id/
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	prod, err := h.Catalog.Get(c.Params("id"))
	if errors.Is(err, repos.ErrNotFound) {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return err
	}
	return c.JSON(newProductListRepr(prod))
}

// PATCH /api/products/:id/ — owning seller only. The owner may edit the full
// field set; there is no forbidden set on this path.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	prod, err := h.Catalog.Get(c.Params("id"))
	if errors.Is(err, repos.ErrNotFound) {
		return detailMsg(c, fiber.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return err
	}

	requester := currentAccount(c)
	if !authz.ProductOwner(requester, prod) {
		applog.Security(c, "products.update.denied", map[string]any{"product_id": prod.ID})
		return detailMsg(c, fiber.StatusForbidden, msgNoPermission)
	}

	var p productUpdatePayload
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

	updated, err := h.Catalog.Update(prod, services.ProductPatch{
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
	})
	if err != nil {
		return err
	}

	applog.Audit(c, "products.update", map[string]any{"product_id": updated.ID})
	return c.JSON(newProductRepr(updated, requester))
}
