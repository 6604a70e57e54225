// internal/app/features/events/handler.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventstore "github.com/devcirclehq/devcircle/internal/app/store/events"
	"github.com/devcirclehq/devcircle/internal/app/system/apierr"
	"github.com/devcirclehq/devcircle/internal/app/system/auth"
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
	Events *eventstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Events: eventstore.New(db),
		Log:    logger,
	}
}

type createRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
	ImageURL     string `json:"image_url"`
	MaxAttendees *int   `json:"max_attendees"`
}

func (cr createRequest) Validate() error {
	return validation.ValidateStruct(&cr,
		validation.Field(&cr.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&cr.Date, validation.Required),
		validation.Field(&cr.MaxAttendees, validation.Min(1)),
	)
}

// Create handles POST /events. The authenticated user becomes the
// organizer.
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

	created, err := h.Events.Create(ctx, models.Event{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		OrganizerID:  auth.CurrentUser(r).ID,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// List handles GET /events.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	events, err := h.Events.List(ctx)
	if err != nil {
		apierr.Respond(w, h.Log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, events)
}

// RSVP handles POST /events/{id}/rsvp for the authenticated user.
func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	eventID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		apierr.Respond(w, h.Log, apierr.New(apierr.BadRequest, "event id is not a valid id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user := auth.CurrentUser(r)
	updated, err := h.Events.Enroll(ctx, eventID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			apierr.Respond(w, h.Log, apierr.New(apierr.NotFound, "no event with this id"))
		case errors.Is(err, eventstore.ErrAlreadyEnrolled):
			apierr.Respond(w, h.Log, apierr.Wrap(apierr.AlreadyEnrolled, "already enrolled in this event", err))
		case errors.Is(err, eventstore.ErrEventFull):
			apierr.Respond(w, h.Log, apierr.Wrap(apierr.EventFull, "event is at capacity", err))
		default:
			apierr.Respond(w, h.Log, err)
		}
		return
	}

	h.Log.Info("event rsvp",
		zap.String("event_id", eventID.Hex()),
		zap.String("user_id", user.ID.Hex()),
		zap.Int("attendees", len(updated.Attendees)))

	httpjson.Write(w, http.StatusOK, updated)
}
