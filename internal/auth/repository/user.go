package repository

import (
	"context"
	"errors"

	"travelog/pkg/model"
)

var ErrNotFound = errors.New("user not found")

// UserRepository is read-only after construction; the seed list never mutates
// while the process runs.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type inMemoryUserRepository struct {
	users map[string]model.User
}

func NewInMemoryUserRepository(users []model.User) UserRepository {
	byName := make(map[string]model.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &inMemoryUserRepository{users: byName}
}

func (r *inMemoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// SeedUsers returns the static account list the service ships with.
// TODO: replace with a persistent user store once one exists.
func SeedUsers() []model.User {
	return []model.User{
		{Username: "Alice", Password: "12345", Role: model.RoleAdmin},
		{Username: "Bob", Password: "54321", Role: model.RoleUser},
	}
}
