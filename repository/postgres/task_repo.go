package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
	SELECT id, title, description, status, priority, deadline, owner_email, created_at, updated_at
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Task, error) {
	// Ascending id keeps list output deterministic across calls.
	const query = `
	SELECT id, title, description, status, priority, deadline, owner_email, created_at, updated_at
	FROM tasks
	WHERE owner_email = $1
	ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (title, description, status, priority, deadline, owner_email)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		nullPriority(task.Priority),
		deadlineValue(task.Deadline),
		task.OwnerEmail,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, id int64, ownerEmail string, patch domain.TaskPatch) (*domain.Task, error) {
	// COALESCE keeps absent patch fields at their stored values, so the
	// whole partial update is a single owner-scoped statement.
	const query = `
	UPDATE tasks
	SET status = COALESCE($3, status),
		title = COALESCE($4, title),
		description = COALESCE($5, description),
		priority = COALESCE($6, priority),
		updated_at = NOW()
	WHERE id = $1 AND owner_email = $2
	RETURNING id, title, description, status, priority, deadline, owner_email, created_at, updated_at
	`

	row := r.pool.QueryRow(ctx, query,
		id,
		ownerEmail,
		patch.Status,
		patch.Title,
		patch.Description,
		priorityValue(patch.Priority),
	)
	return scanTask(row)
}

func (r *taskRepository) Delete(ctx context.Context, id int64, ownerEmail string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND owner_email = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	var (
		priority *string
		deadline *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&priority,
		&deadline,
		&task.OwnerEmail,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if priority != nil {
		task.Priority = domain.Priority(*priority)
	}
	task.Deadline = domain.NewDate(deadline)

	return &task, nil
}
