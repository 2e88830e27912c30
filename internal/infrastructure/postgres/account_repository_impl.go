package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
	"github.com/jobboardhq/jobboard-api/internal/domain/repository"
)

const uniqueViolation = "23505"

const accountColumns = `
	id, name, email, password_hash, role,
	organization_name, industry_type, total_employee, description,
	address, province, city, district, postal_code,
	avatar_url, is_verified, verify_token, verify_token_expiry,
	created_at, updated_at
`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Create(a *entity.Account) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (
			name, email, password_hash, role,
			organization_name, industry_type, total_employee, description,
			address, province, city, district, postal_code,
			avatar_url, verify_token, verify_token_expiry
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, a.Name, a.Email, a.Password, a.Role.String(),
		a.OrganizationName, a.IndustryType, a.TotalEmployee, a.Description,
		a.Address, a.Province, a.City, a.District, a.PostalCode,
		a.AvatarURL, a.VerifyToken, a.VerifyTokenExpiry)

	if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *AccountRepository) GetByID(id string) (*entity.Account, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *AccountRepository) GetByEmail(email string) (*entity.Account, error) {
	return r.getBy(`WHERE email = $1`, email)
}

func (r *AccountRepository) GetByVerifyToken(token string) (*entity.Account, error) {
	return r.getBy(`WHERE verify_token = $1`, token)
}

func (r *AccountRepository) getBy(where string, arg any) (*entity.Account, error) {
	ctx := context.Background()
	a := &entity.Account{}
	var role string

	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts `+where, arg)
	if err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.Password, &role,
		&a.OrganizationName, &a.IndustryType, &a.TotalEmployee, &a.Description,
		&a.Address, &a.Province, &a.City, &a.District, &a.PostalCode,
		&a.AvatarURL, &a.IsVerified, &a.VerifyToken, &a.VerifyTokenExpiry,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	a.Role = entity.Role(role)
	return a, nil
}

func (r *AccountRepository) Update(a *entity.Account) error {
	ctx := context.Background()
	a.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, email = $2, password_hash = $3, role = $4,
			organization_name = $5, industry_type = $6, total_employee = $7, description = $8,
			address = $9, province = $10, city = $11, district = $12, postal_code = $13,
			avatar_url = $14, verify_token = $15, verify_token_expiry = $16, updated_at = $17
		WHERE id = $18
	`, a.Name, a.Email, a.Password, a.Role.String(),
		a.OrganizationName, a.IndustryType, a.TotalEmployee, a.Description,
		a.Address, a.Province, a.City, a.District, a.PostalCode,
		a.AvatarURL, a.VerifyToken, a.VerifyTokenExpiry, a.UpdatedAt, a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) SetVerified(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE accounts
		SET is_verified = TRUE, verify_token = '', verify_token_expiry = NULL, updated_at = now()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
