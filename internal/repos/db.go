package repos

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// BcryptCost is used everywhere a credential is hashed.
const BcryptCost = 12

// DateJoinedLayout is fixed-width so the stored strings sort
// lexicographically in join order.
const DateJoinedLayout = "2006-01-02T15:04:05.000000000Z07:00"

func OpenDB(dsn string) (*sqlx.DB, error) {
	// foreign_keys is a per-connection pragma in sqlite; setting it through
	// the DSN makes the driver apply it to every connection the pool opens.
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sqlx.Open("sqlite", dsn+sep+"_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Accounts
CREATE TABLE IF NOT EXISTS accounts(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  is_seller INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_superuser INTEGER NOT NULL DEFAULT 0,
  date_joined TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_accounts_date_joined ON accounts(date_joined);

-- Auth tokens: one opaque key per account, first writer wins.
CREATE TABLE IF NOT EXISTS tokens(
  key TEXT PRIMARY KEY,
  account_id TEXT NOT NULL UNIQUE REFERENCES accounts(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  description TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  seller_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_seller ON products(seller_id);
`
	_, err := db.Exec(schema)
	return err
}

// SeedSuperuser ensures the configured admin account exists (idempotent; safe
// to run on every start). The superuser is never a seller.
func SeedSuperuser(db *sqlx.DB, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return err
	}

	res, err := db.Exec(`
		INSERT INTO accounts(id,email,password_hash,first_name,last_name,is_seller,is_active,is_superuser,date_joined)
		SELECT ?,?,?,?,?,0,1,1,?
		WHERE NOT EXISTS (SELECT 1 FROM accounts WHERE LOWER(email)=LOWER(?))
	`, uuid.NewString(), email, string(hash), "Admin", "User", time.Now().UTC().Format(DateJoinedLayout), email)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("[seed] superuser %s created", email)
	}
	return nil
}
