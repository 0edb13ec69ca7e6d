package domain

import "time"

// StatusPending is the status assigned to every freshly created task.
// Beyond creation the status is free-form and callers may set any string.
const StatusPending = "pending"

// Task represents a user-owned activity item. OwnerEmail is assigned once
// at creation from the session identity and is never client-supplied.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    Priority  `json:"priority,omitempty"`
	Deadline    *Date     `json:"deadline,omitempty"`
	OwnerEmail  string    `json:"owner_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Task) IsPending() bool {
	return t != nil && t.Status == StatusPending
}
