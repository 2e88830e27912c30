package repository

import (
	"errors"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when an insert or update would violate the
	// unique index on email.
	ErrDuplicateEmail = errors.New("email already exists")
)

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	Create(a *entity.Account) error
	GetByID(id string) (*entity.Account, error)
	GetByEmail(email string) (*entity.Account, error)
	GetByVerifyToken(token string) (*entity.Account, error)
	Update(a *entity.Account) error
	Delete(id string) error
	SetVerified(id string) error
}
