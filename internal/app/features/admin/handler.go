// Package admin implements registration review: listing pending
// requests and approving or rejecting them.
//
// Approval is the one place the platform touches the identity provider
// and the user collection together. The provider account is created
// first, outside any storage transaction; only then are the user insert
// and the status flip applied as a unit. A failure after the provider
// account exists is surfaced as partial_approval_failure so operators
// know reconciliation is needed.
package admin

import (
	"context"
	"errors"
	"net/http"

	pendingstore "github.com/devcirclehq/devcircle/internal/app/store/pendingusers"
	userstore "github.com/devcirclehq/devcircle/internal/app/store/users"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/httpjson"
	"github.com/devcirclehq/devcircle/internal/app/system/identity"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/app/system/txn"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Client      *mongo.Client
	Pending     *pendingstore.Store
	Users       *userstore.Store
	Provisioner identity.Provisioner
	Log         *zap.Logger
}

func NewHandler(client *mongo.Client, db *mongo.Database, provisioner identity.Provisioner, logger *zap.Logger) *Handler {
	return &Handler{
		Client:      client,
		Pending:     pendingstore.New(db),
		Users:       userstore.New(db),
		Provisioner: provisioner,
		Log:         logger,
	}
}

// ListPending handles GET /admin/pending-requests.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pending, err := h.Pending.ListPending(ctx)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, pending)
}

type approveRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ar approveRequest) Validate() error {
	return validation.ValidateStruct(&ar,
		validation.Field(&ar.UserID, validation.Required),
		validation.Field(&ar.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&ar.Password, validation.Required, validation.Length(6, 200)),
	)
}

type approveResponse struct {
	Message     string      `json:"message"`
	User        models.User `json:"user"`
	Credentials credentials `json:"credentials"`
}

// credentials echoes the issued login once. Plaintext is never stored;
// this response is the only place it appears.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Approve handles POST /admin/approve-user.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, "invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, err.Error(), err))
		return
	}
	pendingID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "user_id is not a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.Pending.GetPending(ctx, pendingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no pending registration request with this id"))
			return
		}
		apierr.Respond(w, h.Log, err)
		return
	}

	// Provider call strictly before any storage write; no locks are held
	// while it runs.
	provCtx, provCancel := context.WithTimeout(r.Context(), timeouts.Provider())
	defer provCancel()
	uid, err := h.Provisioner.CreateAccount(provCtx, pending.Email, req.Password, pending.Name)
	if err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.IdentityProvisioningFailed, "identity provider refused account creation", err))
		return
	}

	// From here the provider account exists; any failure is partial and
	// needs operator attention.
	var created models.User
	err = txn.WithTransaction(ctx, h.Client, func(ctx context.Context) error {
		u, err := h.Users.Create(ctx, models.User{
			UID:            uid,
			Name:           pending.Name,
			Email:          pending.Email,
			Username:       req.Username,
			Role:           pending.Role,
			Interests:      pending.Interests,
			GitHubUsername: pending.GitHubUsername,
		})
		if err != nil {
			return err
		}
		if err := h.Pending.MarkApproved(ctx, pendingID); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		h.Log.Error("approval failed after provider account creation",
			zap.String("pending_id", pendingID.Hex()),
			zap.String("uid", uid),
			zap.Error(err))
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.PartialApprovalFailure,
			"provider account was created but local approval did not complete", err))
		return
	}

	h.Log.Info("registration approved",
		zap.String("pending_id", pendingID.Hex()),
		zap.String("user_id", created.ID.Hex()))

	httpjson.Write(w, http.StatusOK, approveResponse{
		Message: "user approved",
		User:    created,
		Credentials: credentials{
			Email:    created.Email,
			Password: req.Password,
		},
	})
}

type rejectRequest struct {
	UserID string `json:"user_id"`
}

func (rr rejectRequest) Validate() error {
	return validation.ValidateStruct(&rr,
		validation.Field(&rr.UserID, validation.Required),
	)
}

// Reject handles POST /admin/reject-user. Rejection is terminal; the
// record stays for audit and the email is freed for resubmission.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, "invalid request body", err))
		return
	}
	if err := req.Validate(); err != nil {
		apierr.Respond(w, h.Log, apierr.Wrap(apierr.BadRequest, err.Error(), err))
		return
	}
	pendingID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "user_id is not a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Pending.MarkRejected(ctx, pendingID); err != nil {
		if errors.Is(err, pendingstore.ErrNotPending) {
			apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no pending registration request with this id"))
			return
		}
		apierr.Respond(w, h.Log, err)
		return
	}

	h.Log.Info("registration rejected", zap.String("pending_id", pendingID.Hex()))
	httpjson.Write(w, http.StatusOK, httpjson.Message{Message: "registration request rejected"})
}
