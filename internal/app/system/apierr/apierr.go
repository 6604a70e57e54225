// Package apierr defines the API error taxonomy and the single JSON
// error envelope every handler writes.
//
// Handlers and features classify failures with a Kind; the HTTP status
// and response body are derived here so the mapping lives in one place.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Kind classifies an API failure.
type Kind string

const (
	BadRequest                 Kind = "bad_request"
	Unauthenticated            Kind = "unauthenticated"
	Forbidden                  Kind = "forbidden"
	NotFound                   Kind = "not_found"
	DuplicateRequest           Kind = "duplicate_request"
	AlreadyEnrolled            Kind = "already_enrolled"
	EventFull                  Kind = "event_full"
	IdentityProvisioningFailed Kind = "identity_provisioning_failed"
	PartialApprovalFailure     Kind = "partial_approval_failure"
	Timeout                    Kind = "timeout"
	StorageUnavailable         Kind = "storage_unavailable"
)

// Error carries a Kind plus a caller-facing message and the underlying
// cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with a caller-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a Kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf resolves the Kind for any error. Unclassified errors are
// treated as storage failures, the most common untyped cause.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return NotFound
	}
	return StorageUnavailable
}

// HTTPStatus maps a Kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case DuplicateRequest, AlreadyEnrolled, EventFull:
		return http.StatusConflict
	case IdentityProvisioningFailed:
		return http.StatusBadGateway
	case PartialApprovalFailure:
		return http.StatusInternalServerError
	case Timeout:
		return http.StatusGatewayTimeout
	case StorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type envelope struct {
	Error body `json:"error"`
}

type body struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Respond writes the JSON error envelope for err and logs it. Server
// faults log at error level; expected client outcomes at debug.
func Respond(w http.ResponseWriter, logger *zap.Logger, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)

	if status >= 500 {
		logger.Error("request failed", zap.String("kind", string(kind)), zap.Error(err))
	} else {
		logger.Debug("request rejected", zap.String("kind", string(kind)), zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: body{
		Kind:    kind,
		Message: callerMessage(err, kind),
	}})
}

// callerMessage returns the message safe to show callers. Untyped
// errors get a generic message so internals never leak.
func callerMessage(err error, kind Kind) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	switch kind {
	case Timeout:
		return "request timed out"
	case NotFound:
		return "not found"
	default:
		return "request could not be completed"
	}
}
