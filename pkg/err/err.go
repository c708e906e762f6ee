package errprocess

import (
	"errors"
	"fmt"
	"net/http"

	"qna_board_service/pkg/logger"

	"go.uber.org/zap"
)

// Kind classify an application error
type Kind int

const (
	// KindInternal unexpected store/provider failure
	KindInternal Kind = iota
	// KindBadRequest missing or invalid caller-supplied field
	KindBadRequest
	// KindUnauthorized identity or ownership mismatch
	KindUnauthorized
	// KindNotFound referenced member/message does not exist
	KindNotFound
	// KindConflict state already set (double reply, screen name taken)
	KindConflict
)

// ServerErrorMessage is the only text an internal error exposes to callers
const ServerErrorMessage = "Server Error"

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// status NotFound 與 Conflict 沿用 400
func (k Kind) status() int {
	switch k {
	case KindBadRequest, KindNotFound, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AppError error carrying a kind and http status
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap return the wrapped cause
func (e *AppError) Unwrap() error {
	return e.cause
}

func newError(kind Kind, msg string, cause error) *AppError {
	return &AppError{Kind: kind, Status: kind.status(), Message: msg, cause: cause}
}

// BadRequest create a BadRequest error
func BadRequest(msg string) error {
	return newError(KindBadRequest, msg, nil)
}

// Unauthorized create an Unauthorized error
func Unauthorized(msg string) error {
	return newError(KindUnauthorized, msg, nil)
}

// NotFound create a NotFound error
func NotFound(msg string) error {
	return newError(KindNotFound, msg, nil)
}

// Conflict create a Conflict error
func Conflict(msg string) error {
	return newError(KindConflict, msg, nil)
}

// Internal log cause and wrap it as an Internal error
func Internal(msg string, cause error) error {
	logger.Log.Error(msg, zap.Error(cause))
	return newError(KindInternal, msg, cause)
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// As extract the AppError from err chain
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind report whether err is an AppError of kind
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}

// Status http status for err, 500 when err is not an AppError
func Status(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage message safe to return to callers
func PublicMessage(err error) string {
	if appErr, ok := As(err); ok && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return ServerErrorMessage
}
