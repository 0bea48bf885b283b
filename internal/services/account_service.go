package services

import (
	"time"

	"storefront/internal/domain"
	"storefront/internal/repos"
	"storefront/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AccountService owns the identity store operations: registration, superuser
// creation, listing, and the two controlled update paths.
type AccountService struct {
	Accounts *repos.AccountRepo
}

// NewAccount carries the public registration fields. is_superuser is not here
// on purpose: it is never settable from outside.
type NewAccount struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	IsSeller  bool
}

// AccountPatch is the self-service partial update: only non-nil fields are
// applied. is_active and is_superuser are deliberately not representable here;
// the activation toggle goes through SetActive.
type AccountPatch struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	IsSeller  *bool
}

func (s *AccountService) Register(in NewAccount) (*domain.Account, error) {
	return s.create(in, false)
}

// RegisterSuperuser creates an admin account. Superusers are never sellers.
func (s *AccountService) RegisterSuperuser(in NewAccount) (*domain.Account, error) {
	in.IsSeller = false
	return s.create(in, true)
}

func (s *AccountService) create(in NewAccount, superuser bool) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), repos.BcryptCost)
	if err != nil {
		return nil, err
	}
	a := &domain.Account{
		ID:           uuid.NewString(),
		Email:        validate.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsSeller:     in.IsSeller,
		IsActive:     true,
		IsSuperuser:  superuser,
		DateJoined:   time.Now().UTC().Format(repos.DateJoinedLayout),
	}
	if err := s.Accounts.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AccountService) ByID(id string) (*domain.Account, error) {
	return s.Accounts.ByID(id)
}

func (s *AccountService) List() ([]domain.Account, error) {
	return s.Accounts.List()
}

func (s *AccountService) Newest(n int) ([]domain.Account, error) {
	return s.Accounts.Newest(n)
}

// Update merges the submitted fields into the account. The merge is explicit
// per field; a submitted password is re-hashed and the plaintext never stored.
func (s *AccountService) Update(a *domain.Account, p AccountPatch) (*domain.Account, error) {
	if p.Email != nil {
		a.Email = validate.NormalizeEmail(*p.Email)
	}
	if p.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), repos.BcryptCost)
		if err != nil {
			return nil, err
		}
		a.PasswordHash = string(hash)
	}
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.IsSeller != nil {
		a.IsSeller = *p.IsSeller
	}
	if err := s.Accounts.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetActive is the admin-only activation toggle, the single path through which
// is_active may change.
func (s *AccountService) SetActive(a *domain.Account, active bool) (*domain.Account, error) {
	a.IsActive = active
	if err := s.Accounts.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}
