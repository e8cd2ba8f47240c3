package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/amirhodzic/snapvision-backend/internal/errs"
	"github.com/amirhodzic/snapvision-backend/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode error response",
			"error", err, "status", status, "code", code)
	}
}

// HandleError is the single place error kinds become transport responses.
// Handlers and services never write status codes themselves.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	switch e := err.(type) {
	case *errs.NotFoundError:
		log.Warn("resource not found", "error", e.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", e.Message)

	case *errs.AlreadyExistsError:
		log.Warn("resource already exists", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "already_exists", e.Message)

	case *errs.ValidationError:
		log.Warn("validation failed", "error", e.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", e.Message)

	case *errs.AuthenticationError:
		log.Warn("authentication failed", "code", e.Code, "error", e.Message)
		h.WriteError(w, r, http.StatusUnauthorized, e.Code, e.Message)

	case *errs.TransactionConflictError:
		log.Warn("transaction conflict", "error", e.Message)
		h.WriteError(w, r, http.StatusConflict, "transaction_conflict", e.Message)

	case *errs.TimeoutError:
		log.Warn("upstream timeout", "service", e.Service)
		h.WriteError(w, r, http.StatusGatewayTimeout, "upstream_timeout", e.Message)

	case *errs.UpstreamError:
		log.Error("external service error",
			"service", e.Service,
			"status", e.Status,
			"error", e.Message)
		status := e.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		message := e.Message
		if e.Body != "" {
			message = e.Body
		}
		h.WriteError(w, r, status, "upstream_error", message)

	case *errs.DatabaseError:
		log.Error("database error",
			"operation", e.Operation,
			"error", e.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
