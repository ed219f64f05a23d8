package service

import (
	"context"
	"time"

	"task-manager/internal/model"
)

// UserService manages the user records that grants, assignment and CLI
// invocations refer to. No credentials are stored.
type UserService struct {
	users UserStore
	now   func() time.Time
}

func NewUserService(users UserStore, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, now: now}
}

// Create stores a new user with the given display name.
func (s *UserService) Create(ctx context.Context, name string) (*model.User, error) {
	now := s.now()
	user := &model.User{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
