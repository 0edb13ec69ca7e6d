package transport

// SignupRequest carries the registration fields. The field names follow
// the public API contract.
type SignupRequest struct {
	Email    string `json:"user_email"`
	Name     string `json:"user_name"`
	Password string `json:"user_pass"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskAddRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// TaskPatchRequest is a partial update: only the fields present in the
// body are applied to the task.
type TaskPatchRequest struct {
	Status      *string `json:"status"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
}
