package product

import (
	"context"
	"errors"
	"io"
	"log"

	"gearph-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, name, COALESCE(description, ''), price_cents, category, stock, status, images, colors, sizes, created_at, updated_at
`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	return r.query(ctx, q)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price_cents, category, stock, status, images, colors, sizes)
VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.Name, product.Description, product.PriceCents, product.Category,
		product.Stock, product.Status, jsonStrings(product.Images), jsonStrings(product.Colors), jsonStrings(product.Sizes),
	))
	if err != nil {
		r.logger.Printf("product repo: create name=%s error=%v", product.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s name=%s", p.ID, p.Name)
	return p, nil
}

func (r *postgresRepo) Update(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    price_cents = $4,
    category = $5,
    stock = $6,
    status = $7,
    images = $8,
    colors = $9,
    sizes = $10,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		product.ID, product.Name, product.Description, product.PriceCents, product.Category,
		product.Stock, product.Status, jsonStrings(product.Images), jsonStrings(product.Colors), jsonStrings(product.Sizes),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", product.ID, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: deleted id=%s", id)
	return nil
}

// Search matches the query as a case-insensitive substring of name,
// description, or category. Only active products are returned.
func (r *postgresRepo) Search(ctx context.Context, query string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE status = 'active'
  AND (name ILIKE '%' || $1 || '%' OR COALESCE(description, '') ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
ORDER BY name
`
	return r.query(ctx, q, query)
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: query error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: query rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Category, &p.Stock, &p.Status,
		&p.Images, &p.Colors, &p.Sizes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// jsonStrings normalizes nil slices to empty ones so the JSONB columns
// never store SQL NULL.
func jsonStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
