package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Category    string
	Stock       int
	Colors      []string
	Sizes       []string
}

// Apply inserts basic seed data for manual testing. It is idempotent:
// the admin upserts by email and products by name.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if err := ensureAdmin(ctx, pool, "admin@gearph.example", "Admin1234", "Store Admin"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	products := []productSeed{
		{
			Name:        "Raptor X1 Gaming Mouse",
			Description: "Lightweight 58g wired mouse with a 26K DPI optical sensor",
			PriceCents:  149900,
			Category:    "mice",
			Stock:       40,
			Colors:      []string{"black", "white"},
		},
		{
			Name:        "Vanguard TKL Mechanical Keyboard",
			Description: "Hot-swappable tenkeyless board with PBT keycaps",
			PriceCents:  329900,
			Category:    "keyboards",
			Stock:       25,
			Colors:      []string{"black", "mist gray"},
		},
		{
			Name:        "Nimbus Cloth Mousepad XL",
			Description: "900x400mm control-surface pad with stitched edges",
			PriceCents:  79900,
			Category:    "mousepads",
			Stock:       60,
			Sizes:       []string{"XL", "XXL"},
		},
		{
			Name:        "Aurora 27 165Hz Monitor",
			Description: "27-inch 1440p IPS panel, 165Hz, 1ms",
			PriceCents:  1649900,
			Category:    "monitors",
			Stock:       12,
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	return nil
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password, name string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO users (email, password_hash, name, role)
VALUES (lower($1), $2, $3, 'admin')
ON CONFLICT (lower(email)) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed), name)
	return err
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	colors := p.Colors
	if colors == nil {
		colors = []string{}
	}
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	const q = `
INSERT INTO products (name, description, price_cents, category, stock, status, colors, sizes)
SELECT $1, $2, $3, $4, $5, 'active', $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.PriceCents, p.Category, p.Stock, colors, sizes)
	return err
}
