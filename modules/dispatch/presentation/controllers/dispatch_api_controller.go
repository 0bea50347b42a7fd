package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/taskdesk/taskdesk/modules/dispatch/domain/aggregates/task"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/entities/worker"
	"github.com/taskdesk/taskdesk/modules/dispatch/domain/ingest"
	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/controllers/dtos"
	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/mappers"
	"github.com/taskdesk/taskdesk/modules/dispatch/presentation/viewmodels"
	"github.com/taskdesk/taskdesk/modules/dispatch/services"
	"github.com/taskdesk/taskdesk/pkg/application"
	"github.com/taskdesk/taskdesk/pkg/composables"
	"github.com/taskdesk/taskdesk/pkg/configuration"
	"github.com/taskdesk/taskdesk/pkg/constants"
	"github.com/taskdesk/taskdesk/pkg/middleware"
)

type DispatchAPIController struct {
	app      application.Application
	ingest   *services.IngestService
	commits  *services.CommitService
	tasks    *services.TaskService
	basePath string
}

func NewDispatchAPIController(app application.Application) application.Controller {
	return &DispatchAPIController{
		app:      app,
		ingest:   app.Service(services.IngestService{}).(*services.IngestService),
		commits:  app.Service(services.CommitService{}).(*services.CommitService),
		tasks:    app.Service(services.TaskService{}).(*services.TaskService),
		basePath: "/dispatch/api",
	}
}

func (c *DispatchAPIController) Key() string {
	return c.basePath
}

func (c *DispatchAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.RequireActor(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("/uploads", c.ProposeDraft).Methods(http.MethodPost)
	router.HandleFunc("/tasks", c.List).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/tasks/bulk", c.ConfirmDraft).Methods(http.MethodPost)
	writeRouter.HandleFunc("/tasks/finalize", c.FinalizeAll).Methods(http.MethodPost)
	writeRouter.HandleFunc("/tasks/{id}/status", c.UpdateStatus).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/tasks/{id}/assignee", c.Reassign).Methods(http.MethodPatch)
}

// ProposeDraft parses an uploaded tabular file and returns the reviewable
// draft. Nothing is persisted; the caller holds the draft until confirm.
func (c *DispatchAPIController) ProposeDraft(w http.ResponseWriter, r *http.Request) {
	maxBytes := configuration.Use().UploadMaxBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_NO_FILE", "missing or oversized upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_NO_FILE", "missing file field")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	format, err := ingest.ParseFormat(filepath.Ext(header.Filename))
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_UNSUPPORTED_FORMAT", "unsupported upload format")
		return
	}

	draft, err := c.ingest.ProposeDraft(r.Context(), file, format)
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.DraftToViewModel(draft))
}

// ConfirmDraft commits a caller-reviewed draft. Runs inside the per-request
// transaction so the bulk insert lands whole or not at all.
func (c *DispatchAPIController) ConfirmDraft(w http.ResponseWriter, r *http.Request) {
	var req dtos.ConfirmTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_JSON", "invalid json")
		return
	}

	entries := make([]services.DraftEntry, 0, len(req.Tasks))
	for _, entry := range req.Tasks {
		// A malformed worker reference is treated like a stale one: the
		// commit service substitutes a valid assignee.
		proposedID, _ := uuid.Parse(strings.TrimSpace(entry.ProposedWorkerID))
		entries = append(entries, services.DraftEntry{
			ContactName:      entry.ContactName,
			Phone:            entry.Phone,
			Notes:            entry.Notes,
			ProposedWorkerID: proposedID,
		})
	}

	result, err := c.commits.Commit(r.Context(), entries, r.Header.Get("Idempotency-Key"))
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	taskIDs := make([]string, 0, len(result.TaskIDs))
	for _, id := range result.TaskIDs {
		taskIDs = append(taskIDs, id.String())
	}
	writeJSON(w, http.StatusCreated, viewmodels.CommitResult{
		Created:     result.Created,
		TaskIDs:     taskIDs,
		Substituted: result.Substituted,
		Replayed:    result.Replayed,
	})
}

func (c *DispatchAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &task.FindParams{Limit: 50}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			params.Limit = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			params.Offset = parsed
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		status, ok := task.ParseStatus(v)
		if !ok {
			writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_STATUS", "unrecognized status")
			return
		}
		params.Status = &status
	}
	if v := strings.TrimSpace(r.URL.Query().Get("workerId")); v != "" {
		workerID, err := uuid.Parse(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_WORKER_ID", "malformed worker id")
			return
		}
		params.AssignedWorkerID = &workerID
	}

	items, total, err := c.tasks.List(r.Context(), params)
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	out := make([]viewmodels.Task, 0, len(items))
	for _, item := range items {
		out = append(out, mappers.TaskToViewModel(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": out,
		"total": total,
	})
}

func (c *DispatchAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := c.taskID(w, r)
	if !ok {
		return
	}

	entity, err := c.tasks.GetByID(r.Context(), id)
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	// Workers only see their own tasks; others' tasks are indistinguishable
	// from missing ones.
	actor, err := composables.UseActor(r.Context())
	if err != nil || (!actor.IsAdmin() && !entity.IsAssignedTo(actor.ID)) {
		writeAPIError(w, r, http.StatusNotFound, "DISPATCH_TASK_NOT_FOUND", "task not found")
		return
	}

	writeJSON(w, http.StatusOK, mappers.TaskToViewModel(entity))
}

func (c *DispatchAPIController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := c.taskID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.Struct(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_STATUS", validationMessage(err, "status is required"))
		return
	}

	updated, err := c.tasks.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.TaskToViewModel(updated))
}

func (c *DispatchAPIController) Reassign(w http.ResponseWriter, r *http.Request) {
	id, ok := c.taskID(w, r)
	if !ok {
		return
	}

	var req dtos.ReassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_JSON", "invalid json")
		return
	}
	if err := constants.Validate.Struct(&req); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_WORKER_ID", validationMessage(err, "newWorkerId must be a uuid"))
		return
	}
	workerID, err := uuid.Parse(req.NewWorkerID)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_WORKER_ID", "malformed worker id")
		return
	}

	updated, err := c.tasks.Reassign(r.Context(), id, workerID)
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.TaskToViewModel(updated))
}

func (c *DispatchAPIController) FinalizeAll(w http.ResponseWriter, r *http.Request) {
	count, err := c.tasks.FinalizeAll(r.Context())
	if err != nil {
		c.writeDispatchError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewmodels.FinalizeResult{FinalizedCount: count})
}

func (c *DispatchAPIController) taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		writeAPIError(w, r, http.StatusNotFound, "DISPATCH_TASK_NOT_FOUND", "task not found")
		return uuid.Nil, false
	}
	return id, true
}

// writeDispatchError maps domain errors onto HTTP statuses with stable codes.
// Unexpected failures become a generic 500 with detail logged server-side
// only.
func (c *DispatchAPIController) writeDispatchError(w http.ResponseWriter, r *http.Request, err error) {
	var entryErr *services.EntryValidationError
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_UNSUPPORTED_FORMAT", "unsupported upload format")
	case errors.Is(err, ingest.ErrEmptyUpload):
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_EMPTY_UPLOAD", "no valid rows in upload")
	case errors.Is(err, ingest.ErrParseFailure):
		writeAPIError(w, r, http.StatusInternalServerError, "DISPATCH_PARSE_FAILURE", "failed to parse upload")
	case errors.Is(err, ingest.ErrNoWorkersAvailable):
		writeAPIError(w, r, http.StatusConflict, "DISPATCH_NO_WORKERS", "no active workers available")
	case errors.Is(err, task.ErrNoTasksProvided):
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_NO_TASKS", "no tasks provided")
	case errors.As(err, &entryErr):
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_VALIDATION_FAILED", entryErr.Error())
	case errors.Is(err, task.ErrInvalidStatus):
		writeAPIError(w, r, http.StatusBadRequest, "DISPATCH_INVALID_STATUS", "unrecognized status")
	case errors.Is(err, task.ErrNotAssigned):
		writeAPIError(w, r, http.StatusForbidden, "DISPATCH_NOT_ASSIGNED", "task is not assigned to caller")
	case errors.Is(err, task.ErrForbidden):
		writeAPIError(w, r, http.StatusForbidden, "DISPATCH_FORBIDDEN", "operation not permitted for caller role")
	case errors.Is(err, task.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "DISPATCH_TASK_NOT_FOUND", "task not found")
	case errors.Is(err, worker.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "DISPATCH_WORKER_NOT_FOUND", "worker not found")
	case errors.Is(err, worker.ErrInactive):
		writeAPIError(w, r, http.StatusConflict, "DISPATCH_WORKER_INACTIVE", "worker is inactive")
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("dispatch operation failed")
		writeAPIError(w, r, http.StatusInternalServerError, "DISPATCH_INTERNAL", "internal error")
	}
}
