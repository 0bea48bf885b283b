package repos

import (
	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = `id,email,password_hash,first_name,last_name,is_seller,is_active,is_superuser,date_joined`

func (r *AccountRepo) Create(a *domain.Account) error {
	_, err := r.DB.Exec(`
		INSERT INTO accounts(`+accountCols+`)
		VALUES(?,?,?,?,?,?,?,?,?)`,
		a.ID, a.Email, a.PasswordHash, a.FirstName, a.LastName,
		a.IsSeller, a.IsActive, a.IsSuperuser, a.DateJoined)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `SELECT `+accountCols+` FROM accounts WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `SELECT `+accountCols+` FROM accounts WHERE id=?`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// List returns accounts in insertion order (rowid), the stable public listing.
func (r *AccountRepo) List() ([]domain.Account, error) {
	var out []domain.Account
	err := r.DB.Select(&out, `SELECT `+accountCols+` FROM accounts ORDER BY rowid`)
	return out, err
}

// Newest returns up to n accounts, most recently joined first.
func (r *AccountRepo) Newest(n int) ([]domain.Account, error) {
	var out []domain.Account
	err := r.DB.Select(&out, `SELECT `+accountCols+` FROM accounts ORDER BY date_joined DESC, rowid DESC LIMIT ?`, n)
	return out, err
}

// Update persists the mutable columns. id and date_joined never change.
func (r *AccountRepo) Update(a *domain.Account) error {
	_, err := r.DB.Exec(`
		UPDATE accounts
		SET email=?, password_hash=?, first_name=?, last_name=?, is_seller=?, is_active=?
		WHERE id=?`,
		a.Email, a.PasswordHash, a.FirstName, a.LastName, a.IsSeller, a.IsActive, a.ID)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}
