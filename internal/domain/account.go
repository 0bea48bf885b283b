package domain

// Account is the authentication identity. Email doubles as the login name;
// there is no separate username. PasswordHash is never serialized.
type Account struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	IsSeller     bool   `db:"is_seller"`
	IsActive     bool   `db:"is_active"`
	IsSuperuser  bool   `db:"is_superuser"`
	DateJoined   string `db:"date_joined"`
}
