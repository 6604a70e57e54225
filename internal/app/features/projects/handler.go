// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/devcirclehq/devcircle/internal/app/store/projects"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/devcirclehq/devcircle/internal/app/system/httpjson"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Log:      logger,
	}
}

type createRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	GitHubURL   string   `json:"github_url"`
	Status      string   `json:"status"`
}

func (cr createRequest) Validate() error {
	return validation.ValidateStruct(&cr,
		validation.Field(&cr.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&cr.GitHubURL, is.URL),
		validation.Field(&cr.Status,
			validation.In(models.ProjectActive, models.ProjectCompleted, models.ProjectArchived)),
	)
}

// Create handles POST /projects. The creator becomes owner and first
// member.
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Projects.Create(ctx, models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     auth.CurrentUser(r).ID,
		TechStack:   req.TechStack,
		GitHubURL:   req.GitHubURL,
		Status:      req.Status,
	})
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projects, err := h.Projects.List(ctx)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, projects)
}

// Get handles GET /projects/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "project id is not a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no project with this id"))
			return
		}
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, project)
}
