package stats

import (
	"context"
	"fmt"
	"testing"

	"gearph-api/internal/domain"
)

type stubOrders struct{ orders []domain.Order }

func (s *stubOrders) ListAll(_ context.Context) ([]domain.Order, error) { return s.orders, nil }

type stubUsers struct{ users []domain.User }

func (s *stubUsers) List(_ context.Context) ([]domain.User, error) { return s.users, nil }

type stubProducts struct{ products []domain.Product }

func (s *stubProducts) List(_ context.Context) ([]domain.Product, error) { return s.products, nil }

func TestComputeCounts(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		{TotalCents: 100000, Items: []domain.OrderItem{{Name: "Mouse", UnitPriceCents: 100000, Quantity: 1}}},
		{TotalCents: 250000, Items: []domain.OrderItem{{Name: "Keyboard", UnitPriceCents: 250000, Quantity: 1}}},
	}}
	users := &stubUsers{users: []domain.User{
		{Role: domain.RoleAdmin},
		{Role: domain.RoleUser},
		{Role: domain.RoleUser},
	}}
	products := &stubProducts{products: []domain.Product{{}, {}, {}}}

	d, err := New(orders, users, products).Compute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.RevenueCents != 350000 {
		t.Fatalf("expected revenue 350000, got %d", d.RevenueCents)
	}
	if d.OrderCount != 2 {
		t.Fatalf("expected 2 orders, got %d", d.OrderCount)
	}
	if d.ProductCount != 3 {
		t.Fatalf("expected 3 products, got %d", d.ProductCount)
	}
	if d.CustomerCount != 2 {
		t.Fatalf("expected admins excluded from customer count, got %d", d.CustomerCount)
	}
}

func TestComputeTopProductsRankedByRevenue(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		{Items: []domain.OrderItem{
			{Name: "Mouse", UnitPriceCents: 100000, Quantity: 2},
			{Name: "Keyboard", UnitPriceCents: 300000, Quantity: 1},
		}},
		{Items: []domain.OrderItem{
			{Name: "Mouse", UnitPriceCents: 100000, Quantity: 1},
			{Name: "Mousepad", UnitPriceCents: 50000, Quantity: 1},
		}},
	}}

	d, err := New(orders, &stubUsers{}, &stubProducts{}).Compute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.TopProducts) != 3 {
		t.Fatalf("expected 3 ranked products, got %d", len(d.TopProducts))
	}
	if d.TopProducts[0].Name != "Mouse" || d.TopProducts[0].RevenueCents != 300000 || d.TopProducts[0].UnitsSold != 3 {
		t.Fatalf("unexpected leader: %+v", d.TopProducts[0])
	}
	if d.TopProducts[1].Name != "Keyboard" {
		t.Fatalf("unexpected runner-up: %+v", d.TopProducts[1])
	}
}

func TestComputeTopProductsTieBreaksByName(t *testing.T) {
	orders := &stubOrders{orders: []domain.Order{
		{Items: []domain.OrderItem{
			{Name: "Bravo", UnitPriceCents: 100000, Quantity: 1},
			{Name: "Alpha", UnitPriceCents: 100000, Quantity: 1},
		}},
	}}

	d, err := New(orders, &stubUsers{}, &stubProducts{}).Compute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TopProducts[0].Name != "Alpha" || d.TopProducts[1].Name != "Bravo" {
		t.Fatalf("expected alphabetical tie-break, got %+v", d.TopProducts)
	}
}

func TestComputeLimitsTopProductsAndRecentOrders(t *testing.T) {
	var all []domain.Order
	for i := 0; i < 7; i++ {
		all = append(all, domain.Order{
			OrderNumber: fmt.Sprintf("GPH-%d", i),
			Items: []domain.OrderItem{
				{Name: fmt.Sprintf("Product %d", i), UnitPriceCents: int64(100000 - i), Quantity: 1},
			},
		})
	}
	orders := &stubOrders{orders: all}

	d, err := New(orders, &stubUsers{}, &stubProducts{}).Compute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.TopProducts) != 4 {
		t.Fatalf("expected top products capped at 4, got %d", len(d.TopProducts))
	}
	if len(d.RecentOrders) != 5 {
		t.Fatalf("expected recent orders capped at 5, got %d", len(d.RecentOrders))
	}
	if d.RecentOrders[0].OrderNumber != "GPH-0" {
		t.Fatalf("expected listing order preserved, got %s", d.RecentOrders[0].OrderNumber)
	}
}
