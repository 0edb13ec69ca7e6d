package services

import (
	"context"
	"encoding/json"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/infrastructure/buffer"
	"github.com/taskdeck/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase.OperationBuffer
// port so the task use case never imports infrastructure types.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)

func (b *BufferBridge) BufferCreate(ctx context.Context, task *domain.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return b.processor.Enqueue(ctx, buffer.Item{
		OwnerEmail: task.OwnerEmail,
		Operation:  buffer.OperationCreate,
		Data:       data,
	})
}

func (b *BufferBridge) BufferUpdate(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch) error {
	data, err := json.Marshal(patch)
	if err != nil {
		return err
	}
	return b.processor.Enqueue(ctx, buffer.Item{
		OwnerEmail: ownerEmail,
		TaskID:     id,
		Operation:  buffer.OperationUpdate,
		Data:       data,
	})
}

func (b *BufferBridge) BufferDelete(ctx context.Context, id int64, ownerEmail string) error {
	return b.processor.Enqueue(ctx, buffer.Item{
		OwnerEmail: ownerEmail,
		TaskID:     id,
		Operation:  buffer.OperationDelete,
	})
}
