package user

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

const userColumns = `
id::text, email, password_hash, name, role, COALESCE(phone, ''), COALESCE(address, ''), COALESCE(avatar, ''),
preferences, last_login_at, active, created_at, updated_at
`

func (r *postgresRepo) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, password_hash, name, role, phone, address, avatar, preferences)
VALUES (lower($1), $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8)
RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q,
		user.Email, user.PasswordHash, user.Name, user.Role,
		user.Phone, user.Address, user.Avatar, user.Preferences,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("user repo: create email=%s already exists", user.Email)
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", user.Email, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s role=%s", u.ID, u.Email, u.Role)
	return u, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return r.get(ctx, q, email)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("user repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, user domain.User) (*domain.User, error) {
	const q = `
UPDATE users
SET name = $2,
    phone = NULLIF($3, ''),
    address = NULLIF($4, ''),
    avatar = NULLIF($5, ''),
    preferences = $6,
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q,
		user.ID, user.Name, user.Phone, user.Address, user.Avatar, user.Preferences,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: update profile id=%s error=%v", user.ID, err)
		return nil, err
	}
	return u, nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, passwordHash)
	if err != nil {
		r.logger.Printf("user repo: update password id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) TouchLastLogin(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("user repo: touch last login id=%s error=%v", id, err)
	}
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("user repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("user repo: deleted id=%s", id)
	return nil
}

func (r *postgresRepo) get(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get error=%v", err)
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Phone, &u.Address, &u.Avatar,
		&u.Preferences, &u.LastLoginAt, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
