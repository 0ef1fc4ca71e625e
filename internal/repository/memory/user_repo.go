package memory

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
)

type UserRepo struct {
	store *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	s := r.store
	s.userMu.Lock()
	defer s.userMu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return domain.Inputf("email %q already registered", user.Email)
	}
	if _, taken := s.byHandle[user.Handle]; taken {
		return domain.Inputf("handle %q already taken", user.Handle)
	}

	// u_ids are the table index, so the first registration is the
	// global owner (u_id 0).
	user.ID = int64(len(s.users))
	stored := *user
	s.users = append(s.users, &stored)
	s.byEmail[stored.Email] = &stored
	s.byHandle[stored.Handle] = &stored
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	if id < 0 || id >= int64(len(s.users)) {
		return nil, nil
	}
	clone := *s.users[id]
	return &clone, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepo) GetByHandle(_ context.Context, handle string) (*domain.User, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	u, ok := s.byHandle[handle]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepo) Update(_ context.Context, user *domain.User) error {
	s := r.store
	s.userMu.Lock()
	defer s.userMu.Unlock()

	if user.ID < 0 || user.ID >= int64(len(s.users)) {
		return domain.Inputf("user %d does not exist", user.ID)
	}
	current := s.users[user.ID]

	if other, taken := s.byEmail[user.Email]; taken && other.ID != user.ID {
		return domain.Inputf("email %q already registered", user.Email)
	}
	if other, taken := s.byHandle[user.Handle]; taken && other.ID != user.ID {
		return domain.Inputf("handle %q already taken", user.Handle)
	}

	delete(s.byEmail, current.Email)
	delete(s.byHandle, current.Handle)
	*current = *user
	s.byEmail[current.Email] = current
	s.byHandle[current.Handle] = current
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}
