package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/tripwise/internal/server/response"
	"github.com/atinyakov/tripwise/internal/service"
	"go.uber.org/zap"
)

// writeServiceError maps a service error onto its HTTP status. Identity
// failures keep their message so the client can show it verbatim. A request
// abandoned by its client gets no body.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	if log == nil {
		log = zap.NewNop()
	}

	switch {
	case errors.Is(err, context.Canceled):
		log.Debug("request canceled", zap.Error(err))
	case errors.Is(err, context.DeadlineExceeded):
		log.Debug("request timed out", zap.Error(err))
		response.WriteError(w, http.StatusGatewayTimeout, "request timed out", response.CodeTimeout)
	case errors.Is(err, service.ErrInvalidAdminCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(w, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		response.InternalError(w)
	}
}
