package handlers

import (
	"storefront/internal/repos"
	"storefront/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Accounts *AccountHandler
	Auth     *AuthHandler
	Products *ProductHandler

	AuthSvc *services.AuthService
}

func NewDeps(db *sqlx.DB) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	tokenRepo := repos.NewTokenRepo(db)
	productRepo := repos.NewProductRepo(db)

	accountSvc := &services.AccountService{Accounts: accountRepo}
	authSvc := &services.AuthService{Accounts: accountRepo, Tokens: tokenRepo}
	catalogSvc := services.NewCatalogService(productRepo)

	return &Deps{
		Accounts: &AccountHandler{Accounts: accountSvc},
		Auth:     &AuthHandler{Auth: authSvc},
		Products: &ProductHandler{Catalog: catalogSvc},
		AuthSvc:  authSvc,
	}
}
