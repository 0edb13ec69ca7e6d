package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// UserRepository persists account records. Accounts are never updated or
// deleted once created; the interface stays deliberately minimal.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
