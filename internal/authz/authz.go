// Package authz holds the authorization predicates evaluated per request,
// after authentication and before any mutation. A false result maps to a 403;
// missing or invalid credentials are a transport concern and map to 401
// upstream of these checks.
package authz

import "storefront/internal/domain"

// AccountOwner allows an account to act on its own record only.
func AccountOwner(requester, target *domain.Account) bool {
	return requester != nil && target != nil && requester.ID == target.ID
}

// Superuser gates the admin-only paths, such as the activation toggle.
// Ownership does not matter here: a non-superuser is denied even on itself.
func Superuser(requester *domain.Account) bool {
	return requester != nil && requester.IsSuperuser
}

// SellerWrite is the write half of seller-or-read-only: catalog mutations
// require an authenticated seller. Reads never consult this predicate.
func SellerWrite(requester *domain.Account) bool {
	return requester != nil && requester.IsSeller
}

// ProductOwner allows writes only by the account that owns the product.
func ProductOwner(requester *domain.Account, p *domain.Product) bool {
	return requester != nil && p != nil && requester.ID == p.SellerID
}
