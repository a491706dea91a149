package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux (no third-party
// router needed for this route surface).
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, withCORS(h))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterSignupRoutes account provisioning.
func (r *Router) RegisterSignupRoutes(h *SignupHandler) {
	r.Handle("/auth/api/v1/signup", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Signup(w, req)
	})
}

// RegisterAuthRoutes login/logout.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Login(w, req)
	})
	r.Handle("/auth/api/v1/logout", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Logout(w, req)
	})
}

// RegisterAssistantRoutes AI chat placeholder.
func (r *Router) RegisterAssistantRoutes(h *AssistantHandler) {
	r.Handle("/assistant/api/v1/chat", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Chat(w, req)
	})
}

// RegisterStubRoutes feature areas with no backend yet; empty lists so
// the front-end pages render.
func (r *Router) RegisterStubRoutes(s *StubHandler) {
	r.Handle("/api/v1/stock", s.EmptyList)
	r.Handle("/api/v1/orders", s.EmptyList)
	r.Handle("/api/v1/sales", s.EmptyList)
	r.Handle("/api/v1/prescriptions", s.EmptyList)
	r.Handle("/api/v1/payments", s.EmptyList)
	r.Handle("/api/v1/medical-history", s.EmptyList)
}
