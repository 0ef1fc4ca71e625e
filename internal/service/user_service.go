package service

import (
	"context"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/internal/repository"
	"github.com/flockrhq/flockr/pkg/validator"
)

type UserService struct {
	users repository.UserRepository
	guard *Guard
}

func NewUserService(users repository.UserRepository, guard *Guard) *UserService {
	return &UserService{users: users, guard: guard}
}

func (s *UserService) Profile(ctx context.Context, token string, userID int64) (*domain.Profile, error) {
	if _, err := s.guard.Caller(ctx, token); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Inputf("user %d does not exist", userID)
	}
	return user.Profile(), nil
}

func (s *UserService) SetName(ctx context.Context, token, first, last string) error {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return err
	}
	if !validator.ValidName(first) {
		return domain.Inputf("first name must be 1-%d characters", validator.MaxNameLen)
	}
	if !validator.ValidName(last) {
		return domain.Inputf("last name must be 1-%d characters", validator.MaxNameLen)
	}

	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	user.FirstName = first
	user.LastName = last
	return s.users.Update(ctx, user)
}

func (s *UserService) SetEmail(ctx context.Context, token, email string) error {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return err
	}
	if !validator.ValidEmail(email) {
		return domain.Inputf("email %q is not a valid address", email)
	}
	if other, err := s.users.GetByEmail(ctx, email); err != nil {
		return err
	} else if other != nil && other.ID != uid {
		return domain.Inputf("email %q already registered", email)
	}

	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	user.Email = email
	return s.users.Update(ctx, user)
}

func (s *UserService) SetHandle(ctx context.Context, token, handle string) error {
	uid, err := s.guard.Caller(ctx, token)
	if err != nil {
		return err
	}
	if !validator.ValidHandle(handle) {
		return domain.Inputf("handle must be %d-%d letters or digits", validator.MinHandleLen, validator.MaxHandleLen)
	}
	if other, err := s.users.GetByHandle(ctx, handle); err != nil {
		return err
	} else if other != nil && other.ID != uid {
		return domain.Inputf("handle %q already taken", handle)
	}

	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return err
	}
	user.Handle = handle
	return s.users.Update(ctx, user)
}

// All returns the profile of every registered user.
func (s *UserService) All(ctx context.Context, token string) ([]domain.Profile, error) {
	if _, err := s.guard.Caller(ctx, token); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Profile, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Profile())
	}
	return out, nil
}
