package httpapi

import "net/http"

// StubHandler serves the feature areas whose pages exist in the
// front-end but have no backend yet (stock, orders, sales,
// prescriptions, payments, medical history). Lists come back empty so
// the pages render instead of 404ing.
type StubHandler struct{}

func NewStubHandler() *StubHandler {
	return &StubHandler{}
}

func (s *StubHandler) EmptyList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": []any{}, "total": 0})
}
