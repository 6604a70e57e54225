// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/devcirclehq/devcircle/internal/app/store/projects"
	taskstore "github.com/devcirclehq/devcircle/internal/app/store/tasks"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/httpjson"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Tasks    *taskstore.Store
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Tasks:    taskstore.New(db),
		Projects: projectstore.New(db),
		Log:      logger,
	}
}

type createRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

func (cr createRequest) Validate() error {
	return validation.ValidateStruct(&cr,
		validation.Field(&cr.ProjectID, validation.Required),
		validation.Field(&cr.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&cr.Status,
			validation.In(models.TaskTodo, models.TaskInProgress, models.TaskDone)),
		validation.Field(&cr.Priority,
			validation.In(models.PriorityLow, models.PriorityMedium, models.PriorityHigh)),
	)
}

// Create handles POST /tasks. The project must exist.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, "invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, err.Error(), err))
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "project_id is not a valid id"))
		return
	}

	var assigneeID *primitive.ObjectID
	if req.AssigneeID != "" {
		id, err := primitive.ObjectIDFromHex(req.AssigneeID)
		if err != nil {
			apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "assignee_id is not a valid id"))
			return
		}
		assigneeID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ok, err := h.Projects.Exists(ctx, projectID)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	if !ok {
		apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no project with this id"))
		return
	}

	created, err := h.Tasks.Create(ctx, models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  assigneeID,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// ListByProject handles GET /tasks/{project_id}.
func (h *Handler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "project id is not a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tasks, err := h.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, tasks)
}

type patchRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssigneeID *string `json:"assignee_id"`
}

func (pr patchRequest) Validate() error {
	return validation.ValidateStruct(&pr,
		validation.Field(&pr.Status,
			validation.In(models.TaskTodo, models.TaskInProgress, models.TaskDone)),
		validation.Field(&pr.Priority,
			validation.In(models.PriorityLow, models.PriorityMedium, models.PriorityHigh)),
	)
}

// Patch handles PATCH /tasks/{id}. Only status, priority and
// assignee_id can change; an empty assignee_id clears the assignee.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "task id is not a valid id"))
		return
	}

	var req patchRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, "invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, err.Error(), err))
		return
	}

	patch := taskstore.Patch{
		Status:   req.Status,
		Priority: req.Priority,
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			unassigned := primitive.NilObjectID
			patch.AssigneeID = &unassigned
		} else {
			id, err := primitive.ObjectIDFromHex(*req.AssigneeID)
			if err != nil {
				apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "assignee_id is not a valid id"))
				return
			}
			patch.AssigneeID = &id
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Tasks.Patch(ctx, taskID, patch)
	if err != nil {
		switch {
		case errors.Is(err, taskstore.ErrNoFields):
			apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "no fields to update"))
		case errors.Is(err, mongo.ErrNoDocuments):
			apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no task with this id"))
		default:
			apierr.Respond(w, h.Log, err)
		}
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}
