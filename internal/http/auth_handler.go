package httpapi

import (
	"net/http"
	"strings"

	"github.com/Amos-136/maditrack/internal/service"

	"go.uber.org/zap"
)

// AuthHandler login/logout for existing principals.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates the auth Handler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /auth/api/v1/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "corps de requête invalide"})
		return
	}

	req := service.LoginRequest{
		Email:     payload.Email,
		Password:  payload.Password,
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	}

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		// Service layer already logged the details.
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/api/v1/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "token requis"})
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "échec de la déconnexion"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	return r.RemoteAddr
}
