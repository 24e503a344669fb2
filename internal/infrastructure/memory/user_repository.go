// Package memory provides mutex-guarded in-memory implementations of
// the domain repositories. They back the test suites and local runs
// that have no Postgres available.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	repo "github.com/victorbrunner12/fast-api-pizzaria/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]*entity.User
	byEmail map[string]int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID:  1,
		users:   make(map[int64]*entity.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	if u.Gender == "" {
		u.Gender = entity.DefaultGender
	}
	u.ID = r.nextID
	r.nextID++
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

var _ repo.UserRepository = (*UserRepository)(nil)
