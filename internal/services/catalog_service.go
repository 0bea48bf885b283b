package services

import (
	"storefront/internal/domain"
	"storefront/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

// NewProduct carries the creation fields; the seller comes from the
// authenticated requester, never from the payload.
type NewProduct struct {
	Description string
	Price       float64
	Quantity    int
	IsActive    *bool
}

// ProductPatch is the owner's partial update; the full field set is editable.
type ProductPatch struct {
	Description *string
	Price       *float64
	Quantity    *int
	IsActive    *bool
}

func (s *CatalogService) Create(seller *domain.Account, in NewProduct) (*domain.Product, error) {
	p := &domain.Product{
		ID:          uuid.NewString(),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		IsActive:    true,
		SellerID:    seller.ID,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.Products.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Get(id string) (*domain.Product, error) {
	return s.Products.ByID(id)
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Products.List()
}

func (s *CatalogService) Update(p *domain.Product, in ProductPatch) (*domain.Product, error) {
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := s.Products.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}
