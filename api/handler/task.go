package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/api/transport"
	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/middleware"
	"github.com/taskdeck/backend/pkg/httpcontext"
	taskUC "github.com/taskdeck/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the session owner's tasks
// @Tags task
// @Router /api/task/list [get]
func (h *TaskHandler) List(ctx *fasthttp.RequestCtx) {
	owner := middleware.OwnerEmail(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, owner)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	// The list endpoint returns a bare array, not the envelope.
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create a task owned by the session identity
// @Tags task
// @Router /api/task/add [post]
func (h *TaskHandler) Add(ctx *fasthttp.RequestCtx) {
	owner := middleware.OwnerEmail(ctx)

	var req transport.TaskAddRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Fail(domain.ErrInvalidPayload.Message))
		return
	}

	var priority domain.Priority
	if req.Priority != "" {
		parsed, err := domain.ParsePriority(req.Priority)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		priority = parsed
	}

	var deadline *domain.Date
	if req.Deadline != "" {
		parsed, err := domain.ParseDate(req.Deadline)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		deadline = &parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Add(stdCtx, owner, req.Title, req.Description, priority, deadline); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.OK("Task added successfully."))
}

// @Summary Apply a partial update to a task
// @Tags task
// @Router /api/task/update/{id} [put]
func (h *TaskHandler) Update(ctx *fasthttp.RequestCtx) {
	owner := middleware.OwnerEmail(ctx)

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	var req transport.TaskPatchRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Fail(domain.ErrInvalidPayload.Message))
		return
	}

	patch := domain.TaskPatch{
		Status:      req.Status,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Priority != nil {
		parsed, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		patch.Priority = &parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Update(stdCtx, id, owner, patch); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OK("Task updated successfully."))
}

// @Summary Delete a task by id
// @Tags task
// @Router /api/task/delete/{id} [delete]
func (h *TaskHandler) Delete(ctx *fasthttp.RequestCtx) {
	owner := middleware.OwnerEmail(ctx)

	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, owner); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.OK("Task deleted successfully."))
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.Fail(domain.ErrInvalidPayload.Message))
		return 0, false
	}
	return id, true
}
