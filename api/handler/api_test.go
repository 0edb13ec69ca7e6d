package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	routerlib "github.com/fasthttp/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"golang.org/x/crypto/bcrypt"

	apiHandler "github.com/taskdeck/backend/api/handler"
	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/internal/router"
	authUC "github.com/taskdeck/backend/usecase/auth"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

const cookieName = "task_session"

// In-memory repositories mirroring the owner-scoped semantics of the
// Postgres implementations.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.Email] = &copied
	return user, nil
}

type memTaskRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, ownerEmail string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.OwnerEmail == ownerEmail {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	copied := *task
	r.tasks[task.ID] = &copied
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, id int64, ownerEmail string, patch domain.TaskPatch) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.OwnerEmail != ownerEmail {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(task)
	task.UpdatedAt = time.Now()
	copied := *task
	return &copied, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64, ownerEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok || task.OwnerEmail != ownerEmail {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session, ok := r.sessions[id]; ok {
		session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	return nil
}

func newTestRouter() *routerlib.Router {
	auth := authUC.New(newMemUserRepo(), newMemSessionRepo(), nil, authUC.Config{
		BcryptCost: bcrypt.MinCost,
		SessionTTL: time.Hour,
	})
	tasks := taskUC.New(newMemTaskRepo(), nil, nil)

	handlers := router.Handlers{
		Auth: apiHandler.NewAuthHandler(auth, nil, nil, cookieName),
		Task: apiHandler.NewTaskHandler(tasks, nil, nil),
	}
	return routerWithoutHealth(handlers, middleware.Session(auth, cookieName, nil))
}

// The health and SPA handlers need live infrastructure; the API contract
// tests run the remaining routes through the real router wiring.
func routerWithoutHealth(handlers router.Handlers, session func(fasthttp.RequestHandler) fasthttp.RequestHandler) *routerlib.Router {
	r := routerlib.New()
	r.POST("/api/user/signup", handlers.Auth.SignUp)
	r.POST("/api/user/login", handlers.Auth.Login)
	r.POST("/api/user/logout", handlers.Auth.Logout)
	r.GET("/api/user/current", handlers.Auth.Current)
	r.GET("/api/task/list", session(handlers.Task.List))
	r.POST("/api/task/add", session(handlers.Task.Add))
	r.PUT("/api/task/update/{id}", session(handlers.Task.Update))
	r.DELETE("/api/task/delete/{id}", session(handlers.Task.Delete))
	return r
}

func doRequest(r *routerlib.Router, method, path, body, token string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}
	if token != "" {
		req.Header.SetCookie(cookieName, token)
	}

	ctx := &fasthttp.RequestCtx{}
	ctx.Init(&req, nil, nil)
	r.Handler(ctx)
	return ctx
}

func decodeResponse(t *testing.T, ctx *fasthttp.RequestCtx) transport.Response {
	t.Helper()
	var resp transport.Response
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &resp))
	return resp
}

func sessionToken(t *testing.T, ctx *fasthttp.RequestCtx) string {
	t.Helper()
	raw := ctx.Response.Header.PeekCookie(cookieName)
	require.NotEmpty(t, raw, "login should set the session cookie")
	var c fasthttp.Cookie
	require.NoError(t, c.ParseBytes(raw))
	return string(c.Value())
}

func signupAndLogin(t *testing.T, r *routerlib.Router, email, name, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"user_email":%q,"user_name":%q,"user_pass":%q}`, email, name, password)
	ctx := doRequest(r, http.MethodPost, "/api/user/signup", body, "")
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	ctx = doRequest(r, http.MethodPost, "/api/user/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password), "")
	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	return sessionToken(t, ctx)
}

func TestSignupFlow(t *testing.T) {
	r := newTestRouter()

	ctx := doRequest(r, http.MethodPost, "/api/user/signup",
		`{"user_email":"alice@example.com","user_name":"Alice","user_pass":"secret"}`, "")
	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	resp := decodeResponse(t, ctx)
	assert.True(t, resp.Success)
	assert.Equal(t, "User registered successfully.", resp.Message)

	// signing up the same email twice is a conflict
	ctx = doRequest(r, http.MethodPost, "/api/user/signup",
		`{"user_email":"alice@example.com","user_name":"Alice","user_pass":"secret"}`, "")
	assert.Equal(t, http.StatusConflict, ctx.Response.StatusCode())
	resp = decodeResponse(t, ctx)
	assert.False(t, resp.Success)
	assert.Equal(t, "User already exists.", resp.Error)
}

func TestLoginFlow(t *testing.T) {
	r := newTestRouter()
	token := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")
	assert.NotEmpty(t, token)

	ctx := doRequest(r, http.MethodPost, "/api/user/login",
		`{"email":"alice@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	resp := decodeResponse(t, ctx)
	assert.Equal(t, "Invalid credentials.", resp.Error)

	ctx = doRequest(r, http.MethodPost, "/api/user/login",
		`{"email":"nobody@example.com","password":"secret"}`, "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}

func TestCurrentUser(t *testing.T) {
	r := newTestRouter()
	token := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")

	ctx := doRequest(r, http.MethodGet, "/api/user/current", "", token)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	resp := decodeResponse(t, ctx)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.NotContains(t, string(ctx.Response.Body()), "password")

	// without a session
	ctx = doRequest(r, http.MethodGet, "/api/user/current", "", "")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	resp = decodeResponse(t, ctx)
	assert.Equal(t, "Not logged in", resp.Error)
}

func TestLogout(t *testing.T) {
	r := newTestRouter()
	token := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")

	ctx := doRequest(r, http.MethodPost, "/api/user/logout", "", token)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	resp := decodeResponse(t, ctx)
	assert.Equal(t, "Logged out successfully.", resp.Message)

	// the session is gone
	ctx = doRequest(r, http.MethodGet, "/api/user/current", "", token)
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
	assert.Equal(t, "Not logged in", decodeResponse(t, ctx).Error)
}

func TestTaskLifecycle(t *testing.T) {
	r := newTestRouter()
	token := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")

	ctx := doRequest(r, http.MethodPost, "/api/task/add",
		`{"title":"Buy milk","description":"2 liters","priority":"high","deadline":"2026-09-01"}`, token)
	assert.Equal(t, http.StatusCreated, ctx.Response.StatusCode())
	assert.Equal(t, "Task added successfully.", decodeResponse(t, ctx).Message)

	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", token)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	require.NotNil(t, tasks[0].Deadline)
	assert.Equal(t, "2026-09-01", tasks[0].Deadline.String())

	taskID := tasks[0].ID

	// partial update changes only the patched field
	ctx = doRequest(r, http.MethodPut, fmt.Sprintf("/api/task/update/%d", taskID),
		`{"status":"done"}`, token)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "Task updated successfully.", decodeResponse(t, ctx).Message)

	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", token)
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "done", tasks[0].Status)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "2 liters", tasks[0].Description)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)

	// delete, then delete again
	ctx = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/task/delete/%d", taskID), "", token)
	assert.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "Task deleted successfully.", decodeResponse(t, ctx).Message)

	ctx = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/task/delete/%d", taskID), "", token)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "Task not found.", decodeResponse(t, ctx).Error)

	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", token)
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	assert.Empty(t, tasks)
}

func TestTaskValidation(t *testing.T) {
	r := newTestRouter()
	token := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")

	ctx := doRequest(r, http.MethodPost, "/api/task/add",
		`{"title":"Buy milk","priority":"whenever"}`, token)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "Invalid priority.", decodeResponse(t, ctx).Error)

	ctx = doRequest(r, http.MethodPut, "/api/task/update/1",
		`{"priority":"whenever"}`, token)
	assert.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	assert.Equal(t, "Invalid priority.", decodeResponse(t, ctx).Error)

	ctx = doRequest(r, http.MethodPut, "/api/task/update/999",
		`{"status":"done"}`, token)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())
	assert.Equal(t, "Task not found.", decodeResponse(t, ctx).Error)
}

func TestTaskOwnershipIsolation(t *testing.T) {
	r := newTestRouter()
	aliceToken := signupAndLogin(t, r, "alice@example.com", "Alice", "secret")
	bobToken := signupAndLogin(t, r, "bob@example.com", "Bob", "hunter2")

	ctx := doRequest(r, http.MethodPost, "/api/task/add", `{"title":"Alice's task"}`, aliceToken)
	require.Equal(t, http.StatusCreated, ctx.Response.StatusCode())

	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", aliceToken)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	taskID := tasks[0].ID

	// Bob can neither see nor touch Alice's task
	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", bobToken)
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	assert.Empty(t, tasks)

	ctx = doRequest(r, http.MethodPut, fmt.Sprintf("/api/task/update/%d", taskID), `{"status":"done"}`, bobToken)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	ctx = doRequest(r, http.MethodDelete, fmt.Sprintf("/api/task/delete/%d", taskID), "", bobToken)
	assert.Equal(t, http.StatusNotFound, ctx.Response.StatusCode())

	// Alice's task is untouched
	ctx = doRequest(r, http.MethodGet, "/api/task/list", "", aliceToken)
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.StatusPending, tasks[0].Status)
}

func TestTaskRoutesRequireSession(t *testing.T) {
	r := newTestRouter()

	for _, route := range []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/task/list", ""},
		{http.MethodPost, "/api/task/add", `{"title":"x"}`},
		{http.MethodPut, "/api/task/update/1", `{"status":"done"}`},
		{http.MethodDelete, "/api/task/delete/1", ""},
	} {
		ctx := doRequest(r, route.method, route.path, route.body, "")
		assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode(), "%s %s", route.method, route.path)
		assert.Equal(t, "Not logged in", decodeResponse(t, ctx).Error)
	}

	// a made-up token is as good as none
	ctx := doRequest(r, http.MethodGet, "/api/task/list", "", "not-a-session")
	assert.Equal(t, http.StatusUnauthorized, ctx.Response.StatusCode())
}
