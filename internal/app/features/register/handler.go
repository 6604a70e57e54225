// Package register handles public registration requests. Submissions
// land in pending_users and wait for admin review; no account exists
// until approval.
package register

import (
	"context"
	"errors"
	"net/http"

	pendingstore "github.com/devcirclehq/devcircle/internal/app/store/pendingusers"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/httpjson"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Pending *pendingstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Pending: pendingstore.New(db),
		Log:     logger,
	}
}

type registerRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	Interests      []string `json:"interests"`
	GitHubUsername string   `json:"github_username"`
}

func (rr registerRequest) Validate() error {
	return validation.ValidateStruct(&rr,
		validation.Field(&rr.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&rr.Email, validation.Required, is.Email),
		validation.Field(&rr.Role, validation.Required,
			validation.In("Student Developer", "Project Leader", "Mentor")),
	)
}

type registerResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Submit handles POST /auth/register-request.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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

	created, err := h.Pending.Submit(ctx, models.PendingUser{
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		Interests:      req.Interests,
		GitHubUsername: req.GitHubUsername,
	})
	if err != nil {
		if errors.Is(err, pendingstore.ErrDuplicateRequest) {
			apierr.Respond(w, h.Log, apierr.Wrap(apierr.DuplicateRequest, "a registration request for this email is already pending", err))
			return
		}
		apierr.Respond(w, h.Log, err)
		return
	}

	h.Log.Info("registration request submitted",
		zap.String("pending_id", created.ID.Hex()),
		zap.String("role", created.Role))

	httpjson.Write(w, http.StatusCreated, registerResponse{
		ID:      created.ID.Hex(),
		Status:  created.Status,
		Message: "registration request submitted for review",
	})
}
