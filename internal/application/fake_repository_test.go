package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobboardhq/jobboard-api/internal/domain/entity"
	"github.com/jobboardhq/jobboard-api/internal/domain/repository"
)

// fakeAccountRepo is an in-memory AccountRepository for tests. It enforces
// email uniqueness the way the real unique index does and exposes error
// fields for failure injection.
type fakeAccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*entity.Account

	createErr error
	updateErr error
	getErr    error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (f *fakeAccountRepo) Create(a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	f.accounts[a.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountRepo) GetByEmail(email string) (*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) GetByVerifyToken(token string) (*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, a := range f.accounts {
		if a.VerifyToken != "" && a.VerifyToken == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) Update(a *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.accounts[a.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.accounts {
		if id != a.ID && existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	a.UpdatedAt = time.Now()
	cp := *a
	f.accounts[a.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepo) SetVerified(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsVerified = true
	a.VerifyToken = ""
	a.VerifyTokenExpiry = nil
	return nil
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)
