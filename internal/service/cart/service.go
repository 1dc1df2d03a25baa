// Package cart manages the session-scoped cart aggregate. Lines are
// snapshots taken at add time and are not reconciled against live
// product data afterwards.
package cart

import (
	"context"
	"errors"

	"gearph-api/internal/domain"
)

// Store persists one cart per session token.
type Store interface {
	Get(ctx context.Context, token string) (*domain.Cart, error)
	Save(ctx context.Context, token string, cart domain.Cart) error
	Delete(ctx context.Context, token string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	store    Store
	products productRepo
}

func New(store Store, products productRepo) *Service {
	return &Service{store: store, products: products}
}

// AddInput selects a product variant to add.
type AddInput struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// Get returns the session's cart; a missing cart is an empty one.
func (s *Service) Get(ctx context.Context, token string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &domain.Cart{}
	}
	return cart, nil
}

// Add snapshots the product into the cart. Adding an already-present
// (productID, color, size) variant increments that line's quantity.
func (s *Service) Add(ctx context.Context, token string, in AddInput) (*domain.Cart, error) {
	if in.ProductID == "" {
		return nil, domain.Validationf("productId required")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return nil, domain.Validationf("quantity must be positive")
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf("product not found")
		}
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, domain.Validationf("product is not available")
	}
	if len(product.Colors) > 0 && !containsString(product.Colors, in.Color) {
		return nil, domain.Validationf("color %q not offered", in.Color)
	}
	if len(product.Sizes) > 0 && !containsString(product.Sizes, in.Size) {
		return nil, domain.Validationf("size %q not offered", in.Size)
	}

	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	item := domain.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Color:          in.Color,
		Size:           in.Size,
		Quantity:       qty,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}
	cart.Add(item)
	if err := s.store.Save(ctx, token, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity updates a line; zero or less removes it.
func (s *Service) SetQuantity(ctx context.Context, token string, key domain.CartKey, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(key, quantity) {
		return nil, domain.ErrNotFound
	}
	if err := s.store.Save(ctx, token, *cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove deletes the matching line.
func (s *Service) Remove(ctx context.Context, token string, key domain.CartKey) (*domain.Cart, error) {
	return s.SetQuantity(ctx, token, key, 0)
}

// Clear drops the whole cart.
func (s *Service) Clear(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
