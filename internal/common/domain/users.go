package domain

import (
	"context"
	"time"
)

type UsersRepository interface {
	// CreateUserWithPortfolio inserts the user and an empty portfolio in
	// one transaction and returns the user with its assigned ID.
	CreateUserWithPortfolio(ctx context.Context, user *User) (*User, error)
	GetUserByName(ctx context.Context, name string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

type User struct {
	ID int64 `json:"id"`

	Name           string `json:"name"`
	HashedPassword string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
