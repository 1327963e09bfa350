package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sokolovart/org-team-manager/internal/apperr"
	"github.com/sokolovart/org-team-manager/internal/lib/api/response"
)

const (
	NotFound       = "NOT_FOUND"
	Conflict       = "CONFLICT"
	InvalidState   = "INVALID_STATE"
	Forbidden      = "FORBIDDEN"
	InternalError  = "INTERNAL_ERROR"
	InvalidRequest = "INVALID_REQUEST"
)

// RespondError maps a service error to its HTTP shape. Internal details
// stay in the log; the caller only ever sees the stable code and message.
func RespondError(w http.ResponseWriter, log *slog.Logger, err error) {
	var (
		status int
		code   string
		msg    = err.Error()
	)

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status, code = http.StatusNotFound, NotFound
	case apperr.KindConflict:
		status, code = http.StatusConflict, Conflict
	case apperr.KindInvalidState:
		status, code = http.StatusUnprocessableEntity, InvalidState
	case apperr.KindForbidden:
		status, code = http.StatusForbidden, Forbidden
	default:
		log.Error("internal error", slog.Any("error", err))
		status, code = http.StatusInternalServerError, InternalError
		msg = "internal error"
	}

	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response.NewErrorResponse(code, msg))
}
