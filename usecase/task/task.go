package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
	}
}

// List returns the owner's tasks in ascending id order.
func (uc *UseCase) List(ctx context.Context, ownerEmail string) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, ownerEmail)
}

// Add creates a task for the owner. Status is always forced to pending
// regardless of what the client sent.
func (uc *UseCase) Add(ctx context.Context, ownerEmail, title, description string, priority domain.Priority, deadline *domain.Date) (*domain.Task, error) {
	task := &domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.StatusPending,
		Priority:    priority,
		Deadline:    deadline,
		OwnerEmail:  ownerEmail,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		if uc.bufferCreate(ctx, task, err) {
			return task, nil
		}
		return nil, err
	}
	return created, nil
}

// Update applies the patch to the owner's task. Ids belonging to other
// owners report ErrTaskNotFound, same as missing ids.
func (uc *UseCase) Update(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	updated, err := uc.tasks.Update(ctx, id, ownerEmail, patch)
	if err != nil {
		if uc.bufferUpdate(ctx, id, ownerEmail, patch, err) {
			return nil, nil
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the owner's task by id.
func (uc *UseCase) Delete(ctx context.Context, id int64, ownerEmail string) error {
	if err := uc.tasks.Delete(ctx, id, ownerEmail); err != nil {
		if uc.bufferDelete(ctx, id, ownerEmail, err) {
			return nil
		}
		return err
	}
	return nil
}

// Store outages are absorbed by the offline buffer; business-rule
// rejections such as not-found are never buffered.

func (uc *UseCase) bufferCreate(ctx context.Context, task *domain.Task, cause error) bool {
	if uc.buffer == nil || !domain.IsStoreFailure(cause) {
		return false
	}
	if err := uc.buffer.BufferCreate(ctx, task); err != nil {
		uc.logger.Error("failed to buffer task create", zap.Error(err))
		return false
	}
	uc.logger.Warn("task create buffered", zap.String("owner", task.OwnerEmail), zap.Error(cause))
	return true
}

func (uc *UseCase) bufferUpdate(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch, cause error) bool {
	if uc.buffer == nil || !domain.IsStoreFailure(cause) {
		return false
	}
	if err := uc.buffer.BufferUpdate(ctx, id, ownerEmail, patch); err != nil {
		uc.logger.Error("failed to buffer task update", zap.Error(err))
		return false
	}
	uc.logger.Warn("task update buffered", zap.Int64("task_id", id), zap.Error(cause))
	return true
}

func (uc *UseCase) bufferDelete(ctx context.Context, id int64, ownerEmail string, cause error) bool {
	if uc.buffer == nil || !domain.IsStoreFailure(cause) {
		return false
	}
	if err := uc.buffer.BufferDelete(ctx, id, ownerEmail); err != nil {
		uc.logger.Error("failed to buffer task delete", zap.Error(err))
		return false
	}
	uc.logger.Warn("task delete buffered", zap.Int64("task_id", id), zap.Error(cause))
	return true
}
