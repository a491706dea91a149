package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PlaceholderReply is what the assistant answers while no upstream
// model service is configured. Same string the front-end ships.
const PlaceholderReply = "Cette fonctionnalité sera disponible prochainement avec l'intégration complète de l'API OpenAI. Pour le moment, c'est une démonstration de l'interface utilisateur."

// AssistantClient proxies chat messages to an upstream assistant
// service when one is configured, and answers with a canned placeholder
// otherwise.
type AssistantClient struct {
	httpClient *resty.Client
	enabled    bool
	logger     *zap.Logger
}

type assistantRequest struct {
	Message string `json:"message"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// NewAssistantClient creates the assistant client. An empty baseURL
// disables the upstream and keeps the endpoint in placeholder mode.
func NewAssistantClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *AssistantClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &AssistantClient{
		httpClient: client,
		enabled:    baseURL != "",
		logger:     logger,
	}
}

// Chat sends one message and returns the assistant's reply.
func (c *AssistantClient) Chat(ctx context.Context, message string) (string, error) {
	if !c.enabled {
		return PlaceholderReply, nil
	}

	var response assistantResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(assistantRequest{Message: message}).
		SetResult(&response).
		SetError(&response).
		Post("/v1/chat")
	if err != nil {
		c.logger.Error("Assistant API call failed", zap.Error(err))
		return "", fmt.Errorf("failed to call assistant API: %w", err)
	}

	if resp.IsError() || response.Error != "" {
		c.logger.Error("Assistant API returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("msg", response.Error),
		)
		return "", fmt.Errorf("assistant API error: %s (status: %d)", response.Error, resp.StatusCode())
	}

	return response.Reply, nil
}
