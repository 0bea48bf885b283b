package handlers

import "storefront/internal/domain"

// accountRepr is the public account representation. password_hash and
// is_superuser are never part of it.
type accountRepr struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsSeller   bool   `json:"is_seller"`
	DateJoined string `json:"date_joined"`
}

// managedAccountRepr additionally exposes is_active; only the management
// endpoint returns it.
type managedAccountRepr struct {
	accountRepr
	IsActive bool `json:"is_active"`
}

func newAccountRepr(a *domain.Account) accountRepr {
	return accountRepr{
		ID:         a.ID,
		Email:      a.Email,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		IsSeller:   a.IsSeller,
		DateJoined: a.DateJoined,
	}
}

func newManagedAccountRepr(a *domain.Account) managedAccountRepr {
	return managedAccountRepr{accountRepr: newAccountRepr(a), IsActive: a.IsActive}
}

func newAccountReprs(accounts []domain.Account) []accountRepr {
	out := make([]accountRepr, 0, len(accounts))
	for i := range accounts {
		out = append(out, newAccountRepr(&accounts[i]))
	}
	return out
}

// productRepr is the full representation with the nested seller, returned on
// create and update.
type productRepr struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Quantity    int         `json:"quantity"`
	IsActive    bool        `json:"is_active"`
	Seller      accountRepr `json:"seller"`
}

// productListRepr is the flattened listing shape: seller_id only, no nested
// seller object.
type productListRepr struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsActive    bool    `json:"is_active"`
	SellerID    string  `json:"seller_id"`
}

func newProductRepr(p *domain.Product, seller *domain.Account) productRepr {
	return productRepr{
		ID:          p.ID,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
		Seller:      newAccountRepr(seller),
	}
}

func newProductListRepr(p *domain.Product) productListRepr {
	return productListRepr{
		ID:          p.ID,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		IsActive:    p.IsActive,
		SellerID:    p.SellerID,
	}
}

func newProductListReprs(products []domain.Product) []productListRepr {
	out := make([]productListRepr, 0, len(products))
	for i := range products {
		out = append(out, newProductListRepr(&products[i]))
	}
	return out
}
