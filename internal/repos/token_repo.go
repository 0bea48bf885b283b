package repos

import (
	"crypto/rand"
	"encoding/hex"

	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type TokenRepo struct{ DB *sqlx.DB }

func NewTokenRepo(db *sqlx.DB) *TokenRepo { return &TokenRepo{DB: db} }

func newTokenKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetOrCreate returns the account's token key, minting one on first login.
// The UNIQUE(account_id) constraint makes this atomic under concurrent logins:
// the losing insert is a no-op and both callers read the same key.
func (r *TokenRepo) GetOrCreate(accountID string) (string, error) {
	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	if _, err := r.DB.Exec(`
		INSERT INTO tokens(key, account_id) VALUES(?, ?)
		ON CONFLICT(account_id) DO NOTHING`, key, accountID); err != nil {
		return "", err
	}
	var out string
	if err := r.DB.Get(&out, `SELECT key FROM tokens WHERE account_id=?`, accountID); err != nil {
		return "", notFound(err)
	}
	return out, nil
}

// AccountByKey resolves a presented bearer key to its account.
func (r *TokenRepo) AccountByKey(key string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
		SELECT a.id,a.email,a.password_hash,a.first_name,a.last_name,a.is_seller,a.is_active,a.is_superuser,a.date_joined
		FROM tokens t
		JOIN accounts a ON a.id=t.account_id
		WHERE t.key=?`, key)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}
