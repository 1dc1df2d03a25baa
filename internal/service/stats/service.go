// Package stats computes the admin dashboard aggregates. Everything is
// recomputed from full collection reads on each request; there is no
// incremental maintenance or caching, which is acceptable at this
// store's data volumes.
package stats

import (
	"context"
	"sort"

	"gearph-api/internal/domain"
)

type orderLister interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
}

type userLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

type Service struct {
	orders   orderLister
	users    userLister
	products productLister
}

func New(orders orderLister, users userLister, products productLister) *Service {
	return &Service{orders: orders, users: users, products: products}
}

// TopProduct is one entry of the revenue ranking, accumulated by
// product name across every order's line items.
type TopProduct struct {
	Name         string `json:"name"`
	RevenueCents int64  `json:"revenueCents"`
	UnitsSold    int    `json:"unitsSold"`
}

// Dashboard is the admin landing-page aggregate.
type Dashboard struct {
	RevenueCents  int64          `json:"revenueCents"`
	OrderCount    int            `json:"orderCount"`
	ProductCount  int            `json:"productCount"`
	CustomerCount int            `json:"customerCount"`
	RecentOrders  []domain.Order `json:"recentOrders"`
	TopProducts   []TopProduct   `json:"topProducts"`
}

const (
	recentOrderLimit = 5
	topProductLimit  = 4
)

// Compute loads the order, user, and product collections and reduces
// them into the dashboard numbers.
func (s *Service) Compute(ctx context.Context) (*Dashboard, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		OrderCount:   len(orders),
		ProductCount: len(products),
	}
	for _, u := range users {
		if u.Role == domain.RoleUser {
			d.CustomerCount++
		}
	}

	revenue := map[string]*TopProduct{}
	for _, o := range orders {
		d.RevenueCents += o.TotalCents
		for _, item := range o.Items {
			entry, ok := revenue[item.Name]
			if !ok {
				entry = &TopProduct{Name: item.Name}
				revenue[item.Name] = entry
			}
			entry.RevenueCents += item.UnitPriceCents * int64(item.Quantity)
			entry.UnitsSold += item.Quantity
		}
	}

	ranked := make([]TopProduct, 0, len(revenue))
	for _, entry := range revenue {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RevenueCents != ranked[j].RevenueCents {
			return ranked[i].RevenueCents > ranked[j].RevenueCents
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topProductLimit {
		ranked = ranked[:topProductLimit]
	}
	d.TopProducts = ranked

	// ListAll returns newest first already.
	recent := orders
	if len(recent) > recentOrderLimit {
		recent = recent[:recentOrderLimit]
	}
	d.RecentOrders = recent

	return d, nil
}
