package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// TaskRepository persists task records. Every mutation is owner-scoped: a
// task id belonging to another owner behaves exactly like a missing one.
type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64, ownerEmail string) error
}
