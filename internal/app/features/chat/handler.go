// internal/app/features/chat/handler.go
package chat

import (
	"context"
	"net/http"
	"strconv"

	chatstore "github.com/devcirclehq/devcircle/internal/app/store/chat"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
	"github.com/devcirclehq/devcircle/internal/app/system/httpjson"
	"github.com/devcirclehq/devcircle/internal/app/system/timeouts"
	"github.com/devcirclehq/devcircle/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Listing bounds for GET /chat/messages.
const (
	defaultLimit = 100
	maxLimit     = 500
)

type Handler struct {
	Chat *chatstore.Store
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Chat: chatstore.New(db),
		Log:  logger,
	}
}

type sendRequest struct {
	Message string `json:"message"`
}

func (sr sendRequest) Validate() error {
	return validation.ValidateStruct(&sr,
		validation.Field(&sr.Message, validation.Required, validation.Length(1, 4000)),
	)
}

// Send handles POST /chat/messages. Sender identity comes from the
// authenticated user, never from the request body.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
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

	user := auth.CurrentUser(r)
	msg, err := h.Chat.Insert(ctx, models.ChatMessage{
		SenderID:   user.ID,
		SenderName: user.Name,
		Message:    req.Message,
	})
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, msg)
}

// List handles GET /chat/messages?limit=N: the newest N messages,
// oldest-first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 || n > maxLimit {
			apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "limit must be between 1 and 500"))
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	msgs, err := h.Chat.ListRecent(ctx, limit)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, msgs)
}
