package product

import (
	"context"
	"strings"

	"gearph-api/internal/domain"
	productrepo "gearph-api/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns active products matching the query.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Validationf("query required")
	}
	return s.repo.Search(ctx, query)
}

// Input carries the admin's product form. Status and stock are set
// independently; storage does not reconcile them.
type Input struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, *p)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.Product, error) {
	p, err := fromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, *p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func fromInput(in Input) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Validationf("name required")
	}
	if in.PriceCents <= 0 {
		return nil, domain.Validationf("price must be positive")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock cannot be negative")
	}
	status := in.Status
	if status == "" {
		status = domain.ProductStatusActive
	}
	if !domain.ValidProductStatus(status) {
		return nil, domain.Validationf("unknown product status %q", status)
	}
	return &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Category:    strings.TrimSpace(in.Category),
		Stock:       in.Stock,
		Status:      status,
		Images:      in.Images,
		Colors:      in.Colors,
		Sizes:       in.Sizes,
	}, nil
}
