package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Item represents a task write that should be replayed once the primary
// store is reachable again. Data carries the operation payload: the full
// task for creates, the patch for updates, nothing for deletes.
type Item struct {
	ID         string          `json:"id"`
	OwnerEmail string          `json:"owner_email"`
	TaskID     int64           `json:"task_id,omitempty"`
	Operation  string          `json:"operation"`
	Data       json.RawMessage `json:"data,omitempty"`
	Retries    int             `json:"retries"`
	Timestamp  time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
