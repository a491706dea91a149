package httpapi

import (
	"net/http"
	"strings"

	"github.com/Amos-136/maditrack/internal/service"

	"go.uber.org/zap"
)

// AssistantHandler the AI chat endpoint backing the Assistant page.
type AssistantHandler struct {
	client *service.AssistantClient
	logger *zap.Logger
}

// NewAssistantHandler creates the assistant Handler.
func NewAssistantHandler(client *service.AssistantClient, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{client: client, logger: logger}
}

// Chat handles POST /assistant/api/v1/chat.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "corps de requête invalide"})
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message requis"})
		return
	}

	reply, err := h.client.Chat(r.Context(), payload.Message)
	if err != nil {
		h.logger.Error("Assistant chat failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "assistant indisponible"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reply": reply})
}
