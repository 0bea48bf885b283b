package domain

// Product belongs to exactly one seller account for its whole lifetime.
type Product struct {
	ID          string  `db:"id"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	Quantity    int     `db:"quantity"`
	IsActive    bool    `db:"is_active"`
	SellerID    string  `db:"seller_id"`
	CreatedAt   string  `db:"created_at"`
}
