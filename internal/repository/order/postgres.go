package order

import (
	"context"
	"errors"
	"io"
	"log"

	"gearph-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const orderColumns = `
id::text, order_number, user_id::text,
customer_email, customer_first_name, customer_last_name, COALESCE(customer_phone, ''),
ship_street, COALESCE(ship_unit, ''), ship_barangay, ship_city, ship_region, ship_postal_code, ship_country,
subtotal_cents, shipping_cents, total_cents,
payment_method, payment_status, order_status, created_at, updated_at
`

func (r *postgresRepo) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO orders (
    order_number, user_id,
    customer_email, customer_first_name, customer_last_name, customer_phone,
    ship_street, ship_unit, ship_barangay, ship_city, ship_region, ship_postal_code, ship_country,
    subtotal_cents, shipping_cents, total_cents,
    payment_method, payment_status, order_status
)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
RETURNING id::text, created_at, updated_at
`
	res := order
	err = tx.QueryRow(ctx, q,
		order.OrderNumber,
		order.UserID,
		order.Customer.Email,
		order.Customer.FirstName,
		order.Customer.LastName,
		order.Customer.Phone,
		order.ShippingAddress.Street,
		order.ShippingAddress.Unit,
		order.ShippingAddress.Barangay,
		order.ShippingAddress.City,
		order.ShippingAddress.Region,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country,
		order.SubtotalCents,
		order.ShippingCents,
		order.TotalCents,
		order.PaymentMethod,
		order.PaymentStatus,
		order.OrderStatus,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Printf("order repo: create number=%s unique violation", order.OrderNumber)
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("order repo: create number=%s error=%v", order.OrderNumber, err)
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, name, unit_price_cents, quantity, color, size, image, position)
VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
`
	for idx, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQ,
			res.ID, item.ProductID, item.Name, item.UnitPriceCents, item.Quantity,
			item.Color, item.Size, item.Image, idx,
		); err != nil {
			r.logger.Printf("order repo: create number=%s item=%d error=%v", order.OrderNumber, idx, err)
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s number=%s items=%d", res.ID, res.OrderNumber, len(res.Items))
	return &res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	row := r.pool.QueryRow(ctx, q, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, update StatusUpdate) (*domain.Order, error) {
	const q = `
UPDATE orders
SET order_status = COALESCE($2, order_status),
    payment_status = COALESCE($3, payment_status),
    updated_at = now()
WHERE id = $1
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q, id, update.OrderStatus, update.PaymentStatus)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: update status id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update status id=%s error=%v", id, err)
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: updated id=%s order_status=%s payment_status=%s", order.ID, order.OrderStatus, order.PaymentStatus)
	return order, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	var refs []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("order repo: list rows error=%v", err)
		return nil, err
	}
	for idx := range result {
		refs = append(refs, &result[idx])
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	const q = `
SELECT order_id::text, COALESCE(product_id::text, ''), name, unit_price_cents, quantity,
       COALESCE(color, ''), COALESCE(size, ''), COALESCE(image, '')
FROM order_items
WHERE order_id = ANY($1)
ORDER BY order_id, position
`
	rows, err := r.pool.Query(ctx, q, ids)
	if err != nil {
		r.logger.Printf("order repo: load items error=%v", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item domain.OrderItem
		if err := rows.Scan(&orderID, &item.ProductID, &item.Name, &item.UnitPriceCents, &item.Quantity, &item.Color, &item.Size, &item.Image); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID,
		&o.Customer.Email, &o.Customer.FirstName, &o.Customer.LastName, &o.Customer.Phone,
		&o.ShippingAddress.Street, &o.ShippingAddress.Unit, &o.ShippingAddress.Barangay,
		&o.ShippingAddress.City, &o.ShippingAddress.Region, &o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.SubtotalCents, &o.ShippingCents, &o.TotalCents,
		&o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
