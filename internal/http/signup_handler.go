package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Amos-136/maditrack/internal/service"

	"go.uber.org/zap"
)

// SignupHandler exposes the tenant-provisioning flow.
type SignupHandler struct {
	signupService service.SignupService
	logger        *zap.Logger
}

// NewSignupHandler creates the signup Handler.
func NewSignupHandler(signupService service.SignupService, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
		logger:        logger,
	}
}

// Signup handles POST /auth/api/v1/signup.
func (h *SignupHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Whatever happens below, the request process must not crash.
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("Signup handler panicked", zap.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, errorBody{
				Error:   service.MsgUnexpectedError,
				Details: fmt.Sprintf("%v", rec),
			})
		}
	}()

	var req service.SignupRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		// Malformed JSON is an unexpected-input failure, same shape the
		// original backend used.
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   service.MsgUnexpectedError,
			Details: err.Error(),
		})
		return
	}

	result, err := h.signupService.ProvisionTenant(ctx, req)
	if err != nil {
		h.writeSignupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, signupSuccess{
		Success: true,
		Message: service.MsgSignupSuccess,
		User:    signupUser{ID: result.PrincipalID, Email: result.Email},
	})
}

func (h *SignupHandler) writeSignupError(w http.ResponseWriter, err error) {
	var sErr *service.SignupError
	if !errors.As(err, &sErr) {
		h.logger.Error("Signup failed with unexpected error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   service.MsgUnexpectedError,
			Details: err.Error(),
		})
		return
	}

	switch sErr.Kind {
	case service.ErrKindValidation:
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   sErr.Message,
			Details: sErr.Details,
		})
	case service.ErrKindRateLimited:
		writeJSON(w, http.StatusTooManyRequests, errorBody{
			Error: sErr.Message,
		})
	default:
		// org_creation / principal_creation: the underlying storage or
		// auth message travels in details, never the raw error object.
		body := errorBody{Error: sErr.Message}
		if len(sErr.Details) > 0 {
			body.Details = sErr.Details[0]
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}
