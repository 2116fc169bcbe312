package failure

import (
	"errors"
	"net/http"
)

// Failure is an error that knows its HTTP status. Kind is the stable identifier
// clients switch on; Message is safe to show to the caller.
type Failure struct {
	Code    int    `json:"code"`
	Kind    string `json:"error"`
	Message string `json:"message"`
}

const (
	KindUnauthorized = "UNAUTHORIZED"
	KindForbidden    = "FORBIDDEN"
	KindNotFound     = "NOT_FOUND"
	KindConflict     = "CONFLICT"
	KindServerError  = "SERVER_ERROR"
	KindUpdateFailed = "UPDATE_FAILED"

	KindMissingField      = "MISSING_FIELD"
	KindMissingFields     = "MISSING_FIELDS"
	KindInvalidInput      = "INVALID_INPUT"
	KindInvalidEmail      = "INVALID_EMAIL"
	KindInvalidRange      = "INVALID_RANGE"
	KindInvalidCodeFormat = "INVALID_CODE_FORMAT"
	KindInvalidStatus     = "INVALID_STATUS"
	KindInvalidTransition = "INVALID_TRANSITION"
	KindPastCheckIn       = "PAST_CHECKIN"
	KindEarlyCheckIn      = "EARLY_CHECKIN"

	KindRoomNotFound    = "ROOM_NOT_FOUND"
	KindBookingNotFound = "BOOKING_NOT_FOUND"
	KindCodeNotFound    = "CODE_NOT_FOUND"
	KindMessageNotFound = "MESSAGE_NOT_FOUND"

	KindRoomUnavailable  = "ROOM_UNAVAILABLE"
	KindAlreadyCheckedIn = "ALREADY_CHECKED_IN"
)

var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func New(code int, kind, msg string) error {
	return &Failure{Code: code, Kind: kind, Message: msg}
}

// Invalid is a 400 with a specific kind.
func Invalid(kind, msg string) error {
	return New(http.StatusBadRequest, kind, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, KindUnauthorized, msg)
}

func Forbidden(msg string) error {
	return New(http.StatusForbidden, KindForbidden, msg)
}

// NotFound is a generic 404; entityName becomes the message.
func NotFound(entityName string) error {
	return New(http.StatusNotFound, KindNotFound, entityName)
}

func NotFoundKind(kind, msg string) error {
	return New(http.StatusNotFound, kind, msg)
}

func Conflict(msg string) error {
	return New(http.StatusConflict, KindConflict, msg)
}

func ConflictKind(kind, msg string) error {
	return New(http.StatusConflict, kind, msg)
}

// InternalError exposes err's message as a 500. Returns nil for a nil err.
func InternalError(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusInternalServerError, KindServerError, err.Error())
}

// Internal is a 500 with a caller-safe message.
func Internal(kind, msg string) error {
	return New(http.StatusInternalServerError, kind, msg)
}

func as(err error) (*Failure, bool) {
	var fail *Failure
	ok := errors.As(err, &fail)

	return fail, ok
}

// GetCode defaults to 500 for errors that are not a Failure.
func GetCode(err error) int {
	if fail, ok := as(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind defaults to KindServerError for errors that are not a Failure.
func GetKind(err error) string {
	if fail, ok := as(err); ok && fail.Kind != "" {
		return fail.Kind
	}

	return KindServerError
}

func IsKind(err error, kind string) bool {
	fail, ok := as(err)

	return ok && fail.Kind == kind
}
