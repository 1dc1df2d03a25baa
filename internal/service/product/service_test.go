package product

import (
	"context"
	"errors"
	"testing"

	"gearph-api/internal/domain"
)

type stubRepo struct {
	created     *domain.Product
	updated     *domain.Product
	searchQuery string
	createCalls int
}

func (s *stubRepo) List(_ context.Context) ([]domain.Product, error) { return nil, nil }

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.createCalls++
	res := p
	res.ID = "p1"
	s.created = &res
	return &res, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.updated = &p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return nil }

func (s *stubRepo) Search(_ context.Context, query string) ([]domain.Product, error) {
	s.searchQuery = query
	return nil, nil
}

func TestCreateDefaultsStatusToActive(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	created, err := svc.Create(context.Background(), Input{Name: "Raptor X1", PriceCents: 149900})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.ProductStatusActive {
		t.Fatalf("expected active status, got %q", created.Status)
	}
}

func TestCreateValidation(t *testing.T) {
	cases := map[string]Input{
		"missing name":   {PriceCents: 100},
		"zero price":     {Name: "X", PriceCents: 0},
		"negative price": {Name: "X", PriceCents: -5},
		"negative stock": {Name: "X", PriceCents: 100, Stock: -1},
		"bad status":     {Name: "X", PriceCents: 100, Status: "discontinued"},
	}
	for name, in := range cases {
		repo := &stubRepo{}
		svc := New(repo)

		_, err := svc.Create(context.Background(), in)
		var verr domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
		if repo.createCalls != 0 {
			t.Fatalf("%s: expected nothing persisted", name)
		}
	}
}

func TestUpdateKeepsID(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	updated, err := svc.Update(context.Background(), "p9", Input{Name: "Raptor X1", PriceCents: 149900})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "p9" {
		t.Fatalf("expected id preserved, got %q", updated.ID)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	svc := New(&stubRepo{})

	_, err := svc.Search(context.Background(), "   ")
	var verr domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSearchTrimsQuery(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	if _, err := svc.Search(context.Background(), "  mouse  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.searchQuery != "mouse" {
		t.Fatalf("expected trimmed query, got %q", repo.searchQuery)
	}
}
