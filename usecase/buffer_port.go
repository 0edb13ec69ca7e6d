package usecase

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic.
type OperationBuffer interface {
	BufferCreate(ctx context.Context, task *domain.Task) error
	BufferUpdate(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch) error
	BufferDelete(ctx context.Context, id int64, ownerEmail string) error
}
