package services

import (
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCreds is returned for unknown email and wrong password alike, so the
// response never reveals which one it was.
var ErrBadCreds = errors.New("invalid email or password")

// dummyHash keeps the unknown-email branch as expensive as a real comparison,
// closing the timing side channel between the two failure paths.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), repos.BcryptCost)
	if err != nil {
		panic(err)
	}
	return h
}()

type AuthService struct {
	Accounts *repos.AccountRepo
	Tokens   *repos.TokenRepo
}

// Login verifies the credential and returns the account's opaque token key.
// Repeated logins return the same key until the token is invalidated.
// Inactive accounts cannot authenticate.
func (s *AuthService) Login(email, password string) (string, error) {
	a, err := s.Accounts.ByEmail(email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	if !a.IsActive {
		return "", ErrBadCreds
	}
	return s.Tokens.GetOrCreate(a.ID)
}

// AccountByToken resolves a presented token key to its account, for the
// authentication middleware.
func (s *AuthService) AccountByToken(key string) (*domain.Account, error) {
	return s.Tokens.AccountByKey(key)
}
