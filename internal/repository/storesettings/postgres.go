package storesettings

import (
	"context"
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

const settingsColumns = `
store_name, COALESCE(store_description, ''), COALESCE(contact_email, ''), COALESCE(contact_phone, ''),
currency, flat_shipping_cents, free_shipping_threshold_cents, allow_guest_checkout, maintenance_mode, updated_at
`

func (r *postgresRepo) Get(ctx context.Context) (*domain.Settings, error) {
	defaults := domain.DefaultSettings()
	const insertQ = `
INSERT INTO settings (id, store_name, store_description, contact_email, currency,
                      flat_shipping_cents, free_shipping_threshold_cents, allow_guest_checkout, maintenance_mode)
VALUES (TRUE, $1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, insertQ,
		defaults.StoreName, defaults.StoreDescription, defaults.ContactEmail, defaults.Currency,
		defaults.FlatShippingCents, defaults.FreeShippingThresholdCents, defaults.AllowGuestCheckout, defaults.MaintenanceMode,
	); err != nil {
		r.logger.Printf("settings repo: ensure defaults error=%v", err)
		return nil, err
	}

	const q = `SELECT ` + settingsColumns + ` FROM settings WHERE id`
	return scanSettings(r.pool.QueryRow(ctx, q))
}

func (r *postgresRepo) Update(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	const q = `
INSERT INTO settings (id, store_name, store_description, contact_email, contact_phone, currency,
                      flat_shipping_cents, free_shipping_threshold_cents, allow_guest_checkout, maintenance_mode, updated_at)
VALUES (TRUE, $1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, now())
ON CONFLICT (id) DO UPDATE SET
    store_name = EXCLUDED.store_name,
    store_description = EXCLUDED.store_description,
    contact_email = EXCLUDED.contact_email,
    contact_phone = EXCLUDED.contact_phone,
    currency = EXCLUDED.currency,
    flat_shipping_cents = EXCLUDED.flat_shipping_cents,
    free_shipping_threshold_cents = EXCLUDED.free_shipping_threshold_cents,
    allow_guest_checkout = EXCLUDED.allow_guest_checkout,
    maintenance_mode = EXCLUDED.maintenance_mode,
    updated_at = now()
RETURNING ` + settingsColumns
	s, err := scanSettings(r.pool.QueryRow(ctx, q,
		settings.StoreName, settings.StoreDescription, settings.ContactEmail, settings.ContactPhone, settings.Currency,
		settings.FlatShippingCents, settings.FreeShippingThresholdCents, settings.AllowGuestCheckout, settings.MaintenanceMode,
	))
	if err != nil {
		r.logger.Printf("settings repo: update error=%v", err)
		return nil, err
	}
	r.logger.Printf("settings repo: updated store_name=%s", s.StoreName)
	return s, nil
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var s domain.Settings
	err := row.Scan(
		&s.StoreName, &s.StoreDescription, &s.ContactEmail, &s.ContactPhone,
		&s.Currency, &s.FlatShippingCents, &s.FreeShippingThresholdCents,
		&s.AllowGuestCheckout, &s.MaintenanceMode, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
