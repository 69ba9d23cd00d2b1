package application

import (
	"context"
	"errors"
	"sync"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/domain/entity"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/internal/infrastructure/postgres"
)

// memRepo is an in-memory UserRepository for service tests. It stores row
// snapshots: mutations on a loaded user only stick after Update, matching
// how the Postgres implementation behaves.
type memRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*entity.User)}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.VerifyExpiresAt != nil {
		t := *u.VerifyExpiresAt
		c.VerifyExpiresAt = &t
	}
	if u.RefreshExpiresAt != nil {
		t := *u.RefreshExpiresAt
		c.RefreshExpiresAt = &t
	}
	if u.LastClaimTime != nil {
		t := *u.LastClaimTime
		c.LastClaimTime = &t
	}
	if u.Balances != nil {
		c.Balances = make(entity.Balances, len(u.Balances))
		for k, v := range u.Balances {
			c.Balances[k] = v
		}
	}
	c.CompletedTasksToday = append([]int64(nil), u.CompletedTasksToday...)
	c.WithdrawHistory = append([]entity.WithdrawRecord(nil), u.WithdrawHistory...)
	c.InvitedFriends = append([]string(nil), u.InvitedFriends...)
	return &c
}

func (r *memRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return errors.New("duplicate email")
		}
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *memRepo) GetByRefreshToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.RefreshToken != "" && u.RefreshToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *memRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return postgres.ErrNotFound
	}
	r.users[u.ID] = cloneUser(u)
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memRepo) DeleteIfUnverified(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.Verified {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
