package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-commerce-user/internal/domain/entity"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	// FindByLoginID returns nil, nil when no user has the login id.
	FindByLoginID(ctx context.Context, loginID string) (*entity.User, error)
	// Save inserts a user without identity and updates one with identity.
	Save(ctx context.Context, u *entity.User) (*entity.User, error)
}

// Transactor runs fn inside a single transaction; the repository handed to
// fn is bound to it. Returning an error rolls the transaction back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

// ErrLoginIDTaken is returned by Save when storage rejects a duplicate login id.
var ErrLoginIDTaken = errors.New("login id already taken")
