package repos

import (
	"storefront/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, description, price, quantity, is_active, seller_id, COALESCE(created_at,'') AS created_at`

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id, description, price, quantity, is_active, seller_id)
		VALUES(?,?,?,?,?,?)`,
		p.ID, p.Description, p.Price, p.Quantity, p.IsActive, p.SellerID)
	if isFKViolation(err) {
		return ErrSellerRequired
	}
	return err
}

func (r *ProductRepo) ByID(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// List returns products in insertion order; the listing contract promises a
// stable order with no implicit reordering.
func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY rowid`)
	return out, err
}

func (r *ProductRepo) Update(p *domain.Product) error {
	_, err := r.db.Exec(`
		UPDATE products
		SET description=?, price=?, quantity=?, is_active=?
		WHERE id=?`,
		p.Description, p.Price, p.Quantity, p.IsActive, p.ID)
	return err
}
